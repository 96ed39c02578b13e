package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/crypto"
	"libraryapi/internal/reader"
)

// Token is the login result.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service struct {
	tokens  *crypto.TokenService
	readers ReaderLookup
	logger  *slog.Logger
}

func NewService(tokens *crypto.TokenService, readers ReaderLookup, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{tokens: tokens, readers: readers, logger: logger}
}

// Login checks the credentials and issues an access token with the configured TTL.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	rd, err := s.readers.GetByEmail(ctx, reader.NormalizeEmail(email))
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		crypto.VerifyDummy(password)
		s.logger.InfoContext(ctx, "login rejected", "reason", "unknown email")
		return Token{}, apperr.ErrUnauthorized
	case err != nil:
		return Token{}, err
	}

	if !crypto.VerifyPassword(rd.PasswordHash, password) {
		s.logger.InfoContext(ctx, "login rejected", "reason", "bad password", "reader_id", rd.ID)
		return Token{}, apperr.ErrUnauthorized
	}

	ttl := s.tokens.DefaultTTL()
	access, expiresAt, err := s.tokens.Issue(rd.Email, string(rd.Role), ttl)
	if err != nil {
		return Token{}, err
	}

	return Token{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}
