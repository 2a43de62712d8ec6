package domain

import "time"

// UsernameMaxLength mirrors the users.username column width.
const UsernameMaxLength = 100

// User represents the users table
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"size:100;not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
}
