package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatapp/config"
	chat_errors "chatapp/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenRevoker records tokens that must no longer authenticate.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AccessClaims carries the identity in the standard "sub" claim.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// Identity returns the username the token was issued for.
func (c AccessClaims) Identity() string {
	return c.Subject
}

// TokenService issues and verifies self-contained HS256 access tokens.
// It never consults the user store.
type TokenService struct {
	secret      []byte
	ttl         time.Duration
	fallbackTTL time.Duration
	revoker     TokenRevoker
	now         func() time.Time
}

// NewTokenService builds the issuer from cfg. revoker may be nil, in which case
// tokens stay valid until they expire.
func NewTokenService(cfg *config.Config, revoker TokenRevoker) *TokenService {
	return &TokenService{
		secret:      []byte(cfg.JWTSecret),
		ttl:         time.Duration(cfg.JWTExpirySeconds) * time.Second,
		fallbackTTL: time.Duration(cfg.RevocationFallbackTTLHours) * time.Hour,
		revoker:     revoker,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for issuing and expiry checks. nil restores time.Now.
func (s *TokenService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Issue signs a token asserting identity. A zero lifetime produces a token without "exp".
func (s *TokenService) Issue(identity string) (string, error) {
	if identity == "" {
		return "", chat_errors.ErrMalformedRequest
	}

	now := s.now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  identity,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies tokenString and returns its claims. Any defect in the
// token itself yields chat_errors.ErrUnauthenticated.
func (s *TokenService) Authenticate(ctx context.Context, tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, chat_errors.ErrUnauthenticated
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chat_errors.ErrUnauthenticated
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return AccessClaims{}, chat_errors.ErrUnauthenticated
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return AccessClaims{}, chat_errors.ErrUnauthenticated
	}

	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return AccessClaims{}, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return AccessClaims{}, chat_errors.ErrUnauthenticated
		}
	}

	return *claims, nil
}

// RevocationEnabled reports whether Revoke has any effect.
func (s *TokenService) RevocationEnabled() bool {
	return s.revoker != nil
}

// Revoke blocks the token described by claims for the rest of its lifetime.
func (s *TokenService) Revoke(ctx context.Context, claims AccessClaims) error {
	if s.revoker == nil {
		return errors.New("token revocation is not configured")
	}
	if claims.ID == "" {
		return chat_errors.ErrUnauthenticated
	}

	ttl := s.fallbackTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}
