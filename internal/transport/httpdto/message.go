package httpdto

import (
	"time"

	"chatapp/internal/domain"
)

// TimestampLayout renders message times as "YYYY-MM-DD HH:MM:SS" in UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// SendMessageRequest is used for POST /chat. Message is validated by the message log
// so an empty or missing field is reported as an empty message.
type SendMessageRequest struct {
	Message string `json:"message"`
}

type MessageDTO struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ToMessageDTOs(messages []domain.Message) []MessageDTO {
	out := make([]MessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, MessageDTO{
			Username:  m.Username,
			Message:   m.Text,
			Timestamp: FormatTimestamp(m.CreatedAt),
		})
	}
	return out
}
