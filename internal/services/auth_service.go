package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"chatapp/config"
	"chatapp/internal/domain"
	"chatapp/internal/repository"
	chat_errors "chatapp/pkg/errors"
	"chatapp/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes; longer passwords are refused instead.
const passwordMaxBytes = 72

// AuthService is the credential store: it registers users and verifies login attempts.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
	cost     int
	now      func() time.Time
	logger   *logger.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenService, cfg *config.Config, l *logger.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     cost,
		now:      time.Now,
		logger:   l,
	}
}

// Register stores a new user. Uniqueness is decided by the insert itself.
func (s *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	if err := validateCredentials(username, password); err != nil {
		return 0, err
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return 0, err
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, chat_errors.ErrDuplicateUser) {
			s.logger.InfoCtx(ctx, "signup rejected, username taken", zap.String("username", username))
		}
		return 0, err
	}

	s.logger.InfoCtx(ctx, "user registered", zap.String("username", username), zap.Int64("user_id", u.ID))
	return u.ID, nil
}

// Verify checks username and password and returns the canonical identity.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Verify(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", chat_errors.ErrInvalidCredentials
	}
	if len(password) > passwordMaxBytes {
		// bcrypt would compare only the first 72 bytes; no stored password is this long.
		_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
		return "", chat_errors.ErrInvalidCredentials
	}

	u, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, chat_errors.ErrNotFound) {
			// same bcrypt work as a real comparison
			_ = bcrypt.CompareHashAndPassword(s.placeholderHash(), []byte(password))
			return "", chat_errors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := comparePassword(u.PasswordHash, password); err != nil {
		return "", chat_errors.ErrInvalidCredentials
	}
	return u.Username, nil
}

// Login verifies the credentials and issues an access token for the identity.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	identity, err := s.Verify(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(identity)
}

func (s *AuthService) hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
	})
	return s.dummyHash
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return chat_errors.ErrMalformedRequest
	}
	if domain.TextLength(username) > domain.UsernameMaxLength {
		return chat_errors.ErrMalformedRequest
	}
	if len(password) > passwordMaxBytes {
		return chat_errors.ErrMalformedRequest
	}
	return nil
}
