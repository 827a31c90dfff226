package sendpasswordresettoken

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/logging"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

const PasswordResetPath = "api/auth/reset-password"

type Input struct {
	Email c.Email
}

type Result struct {
	ExpiresAt time.Time
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	linkSender     user.PasswordResetLinkSender
	baseURL        url.URL
	validDuration  time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	linkSender user.PasswordResetLinkSender,
	baseURL url.URL,
	validDuration time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if linkSender == nil {
		panic(e.NewNilArgumentError("linkSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validDuration <= 0 {
		panic(fmt.Sprintf("password reset valid duration must be positive, got %v", validDuration))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		linkSender:     linkSender,
		baseURL:        baseURL,
		validDuration:  validDuration,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}

	now := s.now()
	u.IssuePasswordReset(token, now.Add(s.validDuration), now)
	expiresAt := u.PasswordReset.Value.ExpiresAt
	err = s.userRepository.Save(ctx, u)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not save password reset token.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The token stays valid even if the link can not be delivered.
	err = s.linkSender.SendPasswordResetLink(ctx, u.Email, s.link(token))
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userId", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %w", user.ErrPasswordResetLinkNotSent, err)
	}

	s.log.Info(
		ctx,
		"Password reset link has been sent.",
		logging.Entry("userId", u.ID),
		logging.Entry("expiresAt", expiresAt),
	)
	return Result{ExpiresAt: expiresAt}, nil
}

func (s *service) link(token user.PasswordResetToken) string {
	return s.baseURL.JoinPath(PasswordResetPath, string(token)).String()
}
