package user

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"time"
)

type ID string

type User struct {
	ID            ID
	Username      string
	Email         c.Email
	PasswordHash  PasswordHash
	PasswordReset c.Optional[PasswordReset]
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (u *User) Validate() error {
	if u.ID == "" {
		return e.NewInvalidStateError("user id is not set")
	}
	if u.Email == "" {
		return e.NewInvalidStateErrorf("email is not set for user %s", u.ID)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateErrorf("password hash is not set for user %s", u.ID)
	}
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == "" {
		return e.NewInvalidStateErrorf("password reset token is empty for user %s", u.ID)
	}
	return nil
}

// IssuePasswordReset replaces any previous reset, pending or expired.
// The expiry is kept at millisecond precision, the finest one every store can hold.
func (u *User) IssuePasswordReset(token PasswordResetToken, expiresAt time.Time, at time.Time) {
	u.PasswordReset = c.Some(PasswordReset{Token: token, ExpiresAt: expiresAt.Truncate(time.Millisecond)})
	u.UpdatedAt = at
}

// CanResetPassword reports whether token matches the pending reset and has not expired at now.
func (u *User) CanResetPassword(token PasswordResetToken, now time.Time) bool {
	if !u.PasswordReset.IsPresent || token == "" {
		return false
	}
	return u.PasswordReset.Value.Token == token && u.PasswordReset.Value.IsValidAt(now)
}

// SetPassword overwrites the hash and consumes the pending reset.
func (u *User) SetPassword(hash PasswordHash, at time.Time) {
	u.PasswordHash = hash
	u.PasswordReset = c.None[PasswordReset]()
	u.UpdatedAt = at
}
