package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"chatapp/internal/domain"
	"chatapp/internal/mocks"
	"chatapp/internal/repository"
	"chatapp/internal/testutil"
	chat_errors "chatapp/pkg/errors"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the raw password", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		svc := NewAuthService(mockRepo, NewTokenService(testConfig(), nil), testConfig(), nil)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *domain.User) error {
				req.Equal("alice", u.Username)
				req.NotEqual("rightpass", u.PasswordHash)
				req.NoError(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("rightpass")))
				req.False(u.CreatedAt.IsZero())
				u.ID = 7
				return nil
			}).
			Times(1)

		id, err := svc.Register(ctx, "alice", "rightpass")
		req.NoError(err)
		req.Equal(int64(7), id)
	})

	t.Run("propagates a duplicate username", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		svc := NewAuthService(mockRepo, NewTokenService(testConfig(), nil), testConfig(), nil)

		mockRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(chat_errors.ErrDuplicateUser).
			Times(1)

		_, err := svc.Register(ctx, "alice", "rightpass")
		req.ErrorIs(err, chat_errors.ErrDuplicateUser)
	})

	t.Run("rejects malformed input before touching storage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		svc := NewAuthService(mockRepo, NewTokenService(testConfig(), nil), testConfig(), nil)

		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		tests := []struct {
			name     string
			username string
			password string
		}{
			{"empty username", "", "secret"},
			{"empty password", "alice", ""},
			{"username too long", strings.Repeat("a", 101), "secret"},
			{"password over bcrypt limit", "alice", strings.Repeat("p", 73)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.username, tt.password)
				require.ErrorIs(t, err, chat_errors.ErrMalformedRequest)
			})
		}
	})
}

func TestAuthService_Verify(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := domain.User{ID: 1, Username: "alice", PasswordHash: string(hash)}

	t.Run("correct password returns the identity", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		svc := NewAuthService(mockRepo, NewTokenService(testConfig(), nil), testConfig(), nil)

		mockRepo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(stored, nil)

		identity, err := svc.Verify(ctx, "alice", "rightpass")
		req.NoError(err)
		req.Equal("alice", identity)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		svc := NewAuthService(mockRepo, NewTokenService(testConfig(), nil), testConfig(), nil)

		mockRepo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(stored, nil)
		mockRepo.EXPECT().GetUserByUsername(gomock.Any(), "nobody").Return(domain.User{}, chat_errors.ErrNotFound)

		_, wrongPassErr := svc.Verify(ctx, "alice", "wrongpass")
		_, unknownErr := svc.Verify(ctx, "nobody", "rightpass")

		req.ErrorIs(wrongPassErr, chat_errors.ErrInvalidCredentials)
		req.ErrorIs(unknownErr, chat_errors.ErrInvalidCredentials)
		req.Equal(wrongPassErr.Error(), unknownErr.Error())
	})

	t.Run("storage faults are not disguised as bad credentials", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		svc := NewAuthService(mockRepo, NewTokenService(testConfig(), nil), testConfig(), nil)

		boom := errors.New("connection reset")
		mockRepo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(domain.User{}, boom)

		_, err := svc.Verify(ctx, "alice", "rightpass")
		req.ErrorIs(err, boom)
		req.Equal(500, HTTPStatus(err))
	})
}

func TestAuthService_WithSQLite(t *testing.T) {
	ctx := context.Background()

	newService := func(t *testing.T) (*AuthService, repository.UserRepository) {
		repo := repository.NewUserRepository(testutil.NewSQLiteDB(t))
		tokens := NewTokenService(testConfig(), nil)
		return NewAuthService(repo, tokens, testConfig(), nil), repo
	}

	t.Run("second signup with the same username fails and leaves one row", func(t *testing.T) {
		req := require.New(t)
		svc, repo := newService(t)

		_, err := svc.Register(ctx, "alice", "rightpass")
		req.NoError(err)
		_, err = svc.Register(ctx, "alice", "otherpass")
		req.ErrorIs(err, chat_errors.ErrDuplicateUser)

		n, err := repo.Count(ctx)
		req.NoError(err)
		req.Equal(1, n)

		_, err = svc.Verify(ctx, "alice", "rightpass")
		req.NoError(err)
	})

	t.Run("a longer password sharing the stored 72-byte prefix is rejected", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newService(t)

		stored := strings.Repeat("p", 72)
		_, err := svc.Register(ctx, "alice", stored)
		req.NoError(err)

		_, err = svc.Verify(ctx, "alice", stored+"x")
		req.ErrorIs(err, chat_errors.ErrInvalidCredentials)
		_, err = svc.Login(ctx, "alice", stored+"WRONG-SUFFIX")
		req.ErrorIs(err, chat_errors.ErrInvalidCredentials)

		identity, err := svc.Verify(ctx, "alice", stored)
		req.NoError(err)
		req.Equal("alice", identity)
	})

	t.Run("verify after register", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newService(t)

		_, err := svc.Register(ctx, "alice", "rightpass")
		req.NoError(err)

		_, err = svc.Verify(ctx, "alice", "wrongpass")
		req.ErrorIs(err, chat_errors.ErrInvalidCredentials)

		identity, err := svc.Verify(ctx, "alice", "rightpass")
		req.NoError(err)
		req.Equal("alice", identity)
	})

	t.Run("concurrent signups with one username", func(t *testing.T) {
		req := require.New(t)
		svc, repo := newService(t)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Register(ctx, "carol", "pass")
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				req.ErrorIs(err, chat_errors.ErrDuplicateUser)
			}
		}
		req.Equal(1, succeeded)

		n, err := repo.Count(ctx)
		req.NoError(err)
		req.Equal(1, n)
	})

	t.Run("login issues a token for the identity", func(t *testing.T) {
		req := require.New(t)
		svc, _ := newService(t)

		_, err := svc.Register(ctx, "bob", "hunter2")
		req.NoError(err)

		token, err := svc.Login(ctx, "bob", "hunter2")
		req.NoError(err)

		claims, err := svc.tokens.Authenticate(ctx, token)
		req.NoError(err)
		req.Equal("bob", claims.Identity())

		_, err = svc.Login(ctx, "bob", "hunter3")
		req.ErrorIs(err, chat_errors.ErrInvalidCredentials)
	})
}
