package response

import (
	"authsvc/internal/core/domain/user"
	"errors"
)

const (
	MsgPasswordRequired = "Password is required"
	MsgPasswordMismatch = "Passwords do not match"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

// PasswordErrorMessage returns the user facing message for the new password rule that failed.
func PasswordErrorMessage(err error) string {
	switch {
	case errors.Is(err, user.ErrPasswordRequired):
		return MsgPasswordRequired
	case errors.Is(err, user.ErrPasswordMismatch):
		return MsgPasswordMismatch
	case errors.Is(err, user.ErrPasswordTooShort):
		return MsgPasswordTooShort
	default:
		return err.Error()
	}
}
