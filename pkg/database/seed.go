package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	chat_errors "chatapp/pkg/errors"
)

// UserRegistrar is satisfied by the credential store.
type UserRegistrar interface {
	Register(ctx context.Context, username, password string) (int64, error)
}

// MessageAppender is satisfied by the message log.
type MessageAppender interface {
	Append(ctx context.Context, author, text string) (int64, error)
}

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Usernames []string
	Password  string
	// Greeting is posted once by each newly created user. Empty skips messages.
	Greeting string
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Usernames: []string{"alice", "bob", "carol"},
		Password:  "password123",
		Greeting:  "hello from %s",
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	CreatedUsers  []string
	ExistingUsers []string
	Messages      int
}

// Seed registers development users through the regular services so passwords are
// hashed exactly as at signup. Users that already exist are left untouched.
func Seed(ctx context.Context, cfg *SeedConfig, users UserRegistrar, messages MessageAppender) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	result := &SeedResult{}
	log.Println("Starting database seeding...")

	for _, username := range cfg.Usernames {
		if _, err := users.Register(ctx, username, cfg.Password); err != nil {
			if errors.Is(err, chat_errors.ErrDuplicateUser) {
				result.ExistingUsers = append(result.ExistingUsers, username)
				continue
			}
			return result, fmt.Errorf("failed to seed user %s: %w", username, err)
		}
		result.CreatedUsers = append(result.CreatedUsers, username)

		if cfg.Greeting == "" || messages == nil {
			continue
		}
		if _, err := messages.Append(ctx, username, fmt.Sprintf(cfg.Greeting, username)); err != nil {
			return result, fmt.Errorf("failed to seed message for %s: %w", username, err)
		}
		result.Messages++
	}

	log.Println("Database seeding completed successfully!")
	return result, nil
}
