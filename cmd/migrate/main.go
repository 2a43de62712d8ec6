package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"chatapp/config"
	"chatapp/internal/repository"
	"chatapp/internal/services"
	"chatapp/pkg/database"
	"chatapp/pkg/logger"

	"gorm.io/gorm"
)

const usage = `
Chat - Database CLI Tool

Usage:
  migrate [flags] command

Commands:
  up          Create the users and messages tables
  status      Show database connection status and row counts
  seed-dev    Create development users (and a greeting from each)

Flags:
  -password string   Password for seeded users (default "password123")
  -no-messages       Do not post greetings while seeding

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go -password secret seed-dev
`

func main() {
	password := flag.String("password", "password123", "Password for seeded users")
	noMessages := flag.Bool("no-messages", false, "Do not post greetings while seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	ctx := context.Background()

	cfg := config.LoadConfig()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		runMigrationsUp(ctx, db)
	case "status":
		showStatus(ctx, db, cfg)
	case "seed-dev":
		runMigrationsUp(ctx, db)
		runSeedDevelopment(ctx, db, cfg, *password, !*noMessages)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(ctx context.Context, db *gorm.DB) {
	log.Println("Applying schema...")
	if err := repository.InitSchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	log.Println("Schema is up to date")
}

func showStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) {
	fmt.Printf("Driver: %s\n", cfg.DBDriver)
	if err := database.HealthCheck(ctx, db); err != nil {
		fmt.Printf("Connection: FAILED (%v)\n", err)
		os.Exit(1)
	}
	fmt.Println("Connection: OK")

	users, err := repository.NewUserRepository(db).Count(ctx)
	if err != nil {
		fmt.Printf("Users: unavailable (%v)\n", err)
		return
	}
	messages, err := repository.NewMessageRepository(db).Count(ctx)
	if err != nil {
		fmt.Printf("Messages: unavailable (%v)\n", err)
		return
	}
	fmt.Printf("Users: %d\nMessages: %d\n", users, messages)
}

func runSeedDevelopment(ctx context.Context, db *gorm.DB, cfg *config.Config, password string, withMessages bool) {
	l := logger.New(cfg.LogMode)
	defer l.Sync()

	tokens := services.NewTokenService(cfg, nil)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens, cfg, l)

	seedCfg := database.DefaultSeedConfig()
	seedCfg.Password = password

	var appender database.MessageAppender
	if withMessages {
		appender = services.NewMessageService(repository.NewMessageRepository(db), l)
	}

	res, err := database.Seed(ctx, seedCfg, authService, appender)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	fmt.Printf("Created users: %v\nAlready present: %v\nMessages posted: %d\n", res.CreatedUsers, res.ExistingUsers, res.Messages)
}
