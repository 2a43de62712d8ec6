package services

import (
	"context"
	"time"

	"chatapp/internal/domain"
	"chatapp/internal/repository"
	chat_errors "chatapp/pkg/errors"
	"chatapp/pkg/logger"

	"go.uber.org/zap"
)

// MessageService is the append-only global message log.
type MessageService struct {
	messageRepo repository.MessageRepository
	now         func() time.Time
	logger      *logger.Logger
}

func NewMessageService(messageRepo repository.MessageRepository, l *logger.Logger) *MessageService {
	if l == nil {
		l = logger.NewNop()
	}
	return &MessageService{
		messageRepo: messageRepo,
		now:         time.Now,
		logger:      l,
	}
}

// Append stores text under author. The text is not trimmed; only the empty
// string counts as empty. The timestamp is always assigned here.
func (s *MessageService) Append(ctx context.Context, author, text string) (int64, error) {
	if author == "" {
		return 0, chat_errors.ErrUnauthenticated
	}
	if text == "" {
		return 0, chat_errors.ErrEmptyMessage
	}
	if domain.TextLength(text) > domain.MessageMaxLength {
		return 0, chat_errors.ErrMessageTooLong
	}

	m := &domain.Message{
		Username:  author,
		Text:      text,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.messageRepo.Create(ctx, m); err != nil {
		return 0, err
	}

	s.logger.InfoCtx(ctx, "message appended", zap.Int64("message_id", m.ID))
	return m.ID, nil
}

// ListAll re-reads the whole log, oldest first.
func (s *MessageService) ListAll(ctx context.Context) ([]domain.Message, error) {
	return s.messageRepo.ListAll(ctx)
}
