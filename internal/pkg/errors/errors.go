package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalid            = errors.New("invalid")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrNotVerified        = errors.New("not verified")
	ErrNoPendingCode      = errors.New("no pending code")
	ErrCodeExpired        = errors.New("code expired")
	ErrCodeMismatch       = errors.New("code mismatch")
	ErrDeliveryFailed     = errors.New("delivery failed")
	ErrInternal           = errors.New("internal")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
