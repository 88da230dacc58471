package domain

import (
	"context"
	"time"
)

// AdminSubject is the token subject for the single administrator account.
const AdminSubject = "admin"

// PasswordChecker verifies a plaintext password against a stored hash.
type PasswordChecker interface {
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService authenticates the administrator.
type AuthService interface {
	Login(ctx context.Context, password string) (token string, err error)
}
