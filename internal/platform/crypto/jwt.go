package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultAccessTokenTTL is the lifetime used by login unless configured otherwise.
	DefaultAccessTokenTTL = 30 * time.Minute
	// FallbackTokenTTL applies when a caller issues a token without a lifetime.
	FallbackTokenTTL = 15 * time.Minute
)

var (
	// ErrInvalidToken covers expired, forged and malformed tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("token secret must not be empty")
)

type Claims struct {
	Sub  string `json:"sub"`  // reader email
	Role string `json:"role"` // reader/admin
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewTokenService(secret string, defaultTTL time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultAccessTokenTTL
	}
	return &TokenService{secret: []byte(secret), defaultTTL: defaultTTL, now: time.Now}, nil
}

// DefaultTTL is the configured lifetime for access tokens.
func (s *TokenService) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Issue signs a token for subject. A non-positive ttl uses FallbackTokenTTL.
func (s *TokenService) Issue(subject, role string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = FallbackTokenTTL
	}
	now := s.now()
	expiresAt := now.Add(ttl)

	c := Claims{
		Sub:  subject,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	tokenStr, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenStr, expiresAt, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Every failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.Sub == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
