package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/exp/slog"
)

type Servicer interface {
	Create(ctx context.Context, owner string) (string, error)
	Validate(ctx context.Context, token string) (string, error)
}

// Claims carries the owner identity. user_id is what the record API scopes by.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service issues and checks HS256 bearer tokens. It keeps no state.
type Service struct {
	key []byte
	ttl time.Duration
	log *slog.Logger
	now func() time.Time
}

func NewService(secret string, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		key: []byte(secret),
		ttl: ttl,
		log: log.With("component", "session_service"),
		now: time.Now,
	}
}

// Create signs a token for owner valid for the configured ttl.
func (s *Service) Create(_ context.Context, owner string) (string, error) {
	return s.Issue(owner, s.ttl)
}

// Issue signs a token for owner with an explicit lifetime. A non-positive ttl
// produces a token without expiry.
func (s *Service) Issue(owner string, ttl time.Duration) (string, error) {
	if owner == "" {
		return "", fmt.Errorf("issue token: empty user id")
	}

	now := s.now()
	claims := Claims{
		UserID: owner,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  owner,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the owner the token was issued for.
func (s *Service) Validate(_ context.Context, token string) (string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithLeeway(30*time.Second))
	if err != nil || !parsed.Valid {
		s.log.Debug("token rejected", "error", err)
		return "", ErrInvalidToken
	}

	owner := claims.UserID
	if owner == "" {
		owner = claims.Subject
	}
	if owner == "" {
		return "", ErrInvalidToken
	}
	return owner, nil
}
