package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	chat_errors "chatapp/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndAuthenticate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewTokenService(testConfig(), nil)

	token, err := svc.Issue("bob")
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := svc.Authenticate(ctx, token)
	req.NoError(err)
	req.Equal("bob", claims.Identity())
	req.NotEmpty(claims.ID)
	req.NotNil(claims.ExpiresAt)
}

func TestTokenService_Expiry(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	clock := newFakeClock(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
	svc := NewTokenService(testConfig(), nil)
	svc.now = clock.Now

	token, err := svc.Issue("bob")
	req.NoError(err)

	clock.Advance(59 * time.Second)
	_, err = svc.Authenticate(ctx, token)
	req.NoError(err)

	clock.Advance(2 * time.Second)
	_, err = svc.Authenticate(ctx, token)
	req.ErrorIs(err, chat_errors.ErrUnauthenticated)
}

func TestTokenService_NoExpiryConfigured(t *testing.T) {
	req := require.New(t)
	cfg := testConfig()
	cfg.JWTExpirySeconds = 0
	clock := newFakeClock(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
	svc := NewTokenService(cfg, nil)
	svc.now = clock.Now

	token, err := svc.Issue("bob")
	req.NoError(err)

	clock.Advance(365 * 24 * time.Hour)
	claims, err := svc.Authenticate(context.Background(), token)
	req.NoError(err)
	req.Nil(claims.ExpiresAt)
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewTokenService(testConfig(), nil)

	bobToken, err := svc.Issue("bob")
	require.NoError(t, err)
	malloryToken, err := svc.Issue("mallory")
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "another-secret"
	forged, err := NewTokenService(otherCfg, nil).Issue("bob")
	require.NoError(t, err)

	bobParts := strings.Split(bobToken, ".")
	malloryParts := strings.Split(malloryToken, ".")
	spliced := strings.Join([]string{bobParts[0], malloryParts[1], bobParts[2]}, ".")

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "bob"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: "x"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-token"},
		{"signed with another secret", forged},
		{"payload swapped", spliced},
		{"alg none", unsigned},
		{"empty subject", noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.token)
			require.ErrorIs(t, err, chat_errors.ErrUnauthenticated)
		})
	}
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token no longer authenticates", func(t *testing.T) {
		req := require.New(t)
		revoker := newMemoryRevoker()
		clock := newFakeClock(time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC))
		svc := NewTokenService(testConfig(), revoker)
		svc.now = clock.Now
		req.True(svc.RevocationEnabled())

		token, err := svc.Issue("bob")
		req.NoError(err)
		claims, err := svc.Authenticate(ctx, token)
		req.NoError(err)

		clock.Advance(20 * time.Second)
		req.NoError(svc.Revoke(ctx, claims))
		req.Equal(40*time.Second, revoker.revoked[claims.ID])

		_, err = svc.Authenticate(ctx, token)
		req.ErrorIs(err, chat_errors.ErrUnauthenticated)

		other, err := svc.Issue("bob")
		req.NoError(err)
		_, err = svc.Authenticate(ctx, other)
		req.NoError(err)
	})

	t.Run("non-expiring tokens use the fallback ttl", func(t *testing.T) {
		req := require.New(t)
		cfg := testConfig()
		cfg.JWTExpirySeconds = 0
		revoker := newMemoryRevoker()
		svc := NewTokenService(cfg, revoker)

		token, err := svc.Issue("bob")
		req.NoError(err)
		claims, err := svc.Authenticate(ctx, token)
		req.NoError(err)

		req.NoError(svc.Revoke(ctx, claims))
		req.Equal(time.Hour, revoker.revoked[claims.ID])
	})

	t.Run("revocation lookup failure is not reported as unauthenticated", func(t *testing.T) {
		req := require.New(t)
		revoker := newMemoryRevoker()
		revoker.err = errors.New("redis down")
		svc := NewTokenService(testConfig(), revoker)

		token, err := svc.Issue("bob")
		req.NoError(err)

		_, err = svc.Authenticate(ctx, token)
		req.Error(err)
		req.NotErrorIs(err, chat_errors.ErrUnauthenticated)
	})

	t.Run("without a revoker", func(t *testing.T) {
		req := require.New(t)
		svc := NewTokenService(testConfig(), nil)
		req.False(svc.RevocationEnabled())
		req.Error(svc.Revoke(ctx, AccessClaims{}))
	})
}
