package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services, repositories and controllers.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCapacityExhausted  = errors.New("invitation code space exhausted")
	ErrDuplicateCode      = errors.New("invitation code already exists")
	ErrChatUnavailable    = errors.New("chat assistant unavailable")
)

// ErrChatNotConfigured is an ErrChatUnavailable reported when no chat
// provider has been configured at all.
var ErrChatNotConfigured = fmt.Errorf("%w: no provider configured", ErrChatUnavailable)

// BatchError reports a batch issuance that stopped part way. Issued holds the
// invitations that were persisted before the failure, in input order, so
// Issued[i] belongs to guest name i. Err is the cause.
type BatchError struct {
	Issued []*Invitation
	Err    error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch stopped after %d issued invitation(s): %v", len(e.Issued), e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
