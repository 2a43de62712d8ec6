package repository

import (
	"context"

	"chatapp/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_repository.go -package=mocks

type UserRepository interface {
	// Create inserts u and sets its ID. A taken username yields chat_errors.ErrDuplicateUser.
	Create(ctx context.Context, u *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	Count(ctx context.Context) (int, error)
}

type MessageRepository interface {
	// Create inserts msg and sets its ID.
	Create(ctx context.Context, msg *domain.Message) error
	// ListAll returns every message ordered by creation time, then id.
	ListAll(ctx context.Context) ([]domain.Message, error)
	Count(ctx context.Context) (int, error)
}
