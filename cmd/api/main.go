package main

import (
	"context"
	"log"

	"chatapp/config"
	"chatapp/internal/handler"
	"chatapp/internal/redis"
	"chatapp/internal/repository"
	"chatapp/internal/server"
	"chatapp/internal/services"
	"chatapp/pkg/database"
	"chatapp/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	ctx := context.Background()

	l := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(l)
	defer l.Sync()

	// Connect to Database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := repository.InitSchema(ctx, db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	var revoker services.TokenRevoker
	if cfg.RedisEnabled() {
		client, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		revoker = redis.NewRevocationStore(client)
		l.Infof("Token revocation enabled (redis %s:%s)", cfg.RedisHost, cfg.RedisPort)
	}

	tokens := services.NewTokenService(cfg, revoker)
	authService := services.NewAuthService(repository.NewUserRepository(db), tokens, cfg, l)
	messageService := services.NewMessageService(repository.NewMessageRepository(db), l)

	srv := server.New(cfg, l, db)
	srv.SetupRoutes(&server.Handlers{
		Auth: handler.NewAuthHandler(authService, tokens),
		Chat: handler.NewChatHandler(messageService),
	}, tokens)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped with error: %v", err)
	}
}
