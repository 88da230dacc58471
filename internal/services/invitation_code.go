package services

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"gradinvite/internal/domain"
)

// InvitationCodeLength is the number of decimal digits in an invitation code.
const InvitationCodeLength = 6

// NewDigitCodeGenerator returns a generator of length-digit codes drawn
// uniformly from 0..10^length-1, zero padded so leading zeros are kept.
func NewDigitCodeGenerator(length int) domain.CodeGenerator {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	return func() string {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand.Reader does not fail on supported platforms.
			panic(fmt.Sprintf("read random invitation code: %v", err))
		}
		return fmt.Sprintf("%0*d", length, n.Int64())
	}
}
