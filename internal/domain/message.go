package domain

import (
	"time"
	"unicode/utf8"
)

// MessageMaxLength is counted in characters, not bytes.
const MessageMaxLength = 500

// Message is an entry of the global chat log. It is never edited or deleted.
type Message struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement;index:idx_messages_timeline,priority:2"`
	Username  string    `json:"username" gorm:"size:100;not null"`
	Text      string    `json:"message" gorm:"column:text;size:500;not null;check:chk_messages_text_length,length(text) BETWEEN 1 AND 500"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index:idx_messages_timeline,priority:1"`
}

// TextLength returns the number of characters in text.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}
