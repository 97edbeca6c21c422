package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/staff-roster/internal/auth"
	"github.com/spec-kit/staff-roster/internal/config"
	apperrors "github.com/spec-kit/staff-roster/pkg/util"
)

// AuthService authenticates back-office operators against the configured
// credentials and issues session tokens.
type AuthService struct {
	cfg    config.AuthConfig
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		cfg:    cfg,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the underlying manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies operator credentials and issues a token. Each login
// starts a fresh session, which keys the operator's selection state.
func (s *AuthService) Login(email, password string) (string, time.Time, error) {
	if !strings.EqualFold(email, s.cfg.OperatorEmail) {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if s.cfg.OperatorPasswordHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("operator login not configured")
	}
	if err := auth.ComparePassword(s.cfg.OperatorPasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(s.cfg.OperatorEmail, uuid.NewString())
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}
