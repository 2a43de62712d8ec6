package repository

import (
	"context"
	"fmt"

	"chatapp/internal/domain"

	"gorm.io/gorm"
)

// InitSchema creates the users and messages tables with their unique index,
// length check and timeline index. It is idempotent.
func InitSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&domain.User{}, &domain.Message{}); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
