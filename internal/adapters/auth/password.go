package auth

import (
	"golang.org/x/crypto/bcrypt"

	"gradinvite/internal/domain"
)

type bcryptChecker struct{}

// NewBcryptChecker returns a PasswordChecker for bcrypt hashes such as the
// one configured in ADMIN_PASSWORD_HASH.
func NewBcryptChecker() domain.PasswordChecker {
	return bcryptChecker{}
}

func (bcryptChecker) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
