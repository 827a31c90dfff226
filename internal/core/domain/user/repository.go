package user

import (
	c "authsvc/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	ID           ID
	Username     string
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	// Create returns ErrEmailAlreadyExists if the email is taken, existing records stay untouched.
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByValidPasswordResetToken returns ErrUserDoesNotExist unless the stored token
	// equals token and expires strictly after now.
	GetByValidPasswordResetToken(ctx context.Context, token PasswordResetToken, now time.Time) (User, error)
	// Save overwrites all mutable fields of an existing user.
	Save(ctx context.Context, u User) error
}
