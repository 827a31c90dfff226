package loginwithemail

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

type Result struct {
	Token     user.AccessToken
	ExpiresAt time.Time
}

type service struct {
	log               logging.Logger
	userRepository    user.UserRepository
	passwordHasher    user.PasswordHasher
	accessTokenIssuer user.AccessTokenIssuer
	now               func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	accessTokenIssuer user.AccessTokenIssuer,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if accessTokenIssuer == nil {
		panic(e.NewNilArgumentError("accessTokenIssuer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:               log,
		userRepository:    userRepository,
		passwordHasher:    passwordHasher,
		accessTokenIssuer: accessTokenIssuer,
		now:               now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}

	token, expiresAt, err := s.accessTokenIssuer.IssueAccessToken(u.ID, s.now())
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue access token for user.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, access token issued.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{Token: token, ExpiresAt: expiresAt}, nil
}
