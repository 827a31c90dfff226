package user

import (
	c "authsvc/internal/core/domain/common"
	"context"
	"time"
)

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordReset struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
}

// IsValidAt reports whether the reset can still be used, the expiry instant itself is excluded.
func (r PasswordReset) IsValidAt(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

type PasswordResetLinkSender interface {
	SendPasswordResetLink(ctx context.Context, email c.Email, link string) error
}
