package services

import (
	"context"
	"fmt"
	"time"

	"gradinvite/internal/domain"
)

type authService struct {
	passwordHash string
	checker      domain.PasswordChecker
	issuer       domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAuthService creates an AuthService for the single administrator whose
// bcrypt password hash is passwordHash. An empty hash disables login.
func NewAuthService(passwordHash string, checker domain.PasswordChecker, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		passwordHash: passwordHash,
		checker:      checker,
		issuer:       issuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if s.passwordHash == "" || password == "" {
		return "", domain.ErrUnauthorized
	}
	if err := s.checker.Compare(s.passwordHash, password); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := s.issuer.Issue(domain.AdminSubject, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
