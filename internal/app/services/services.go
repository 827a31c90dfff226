package services

import (
	"authsvc/internal/app/deps"
	"authsvc/internal/core/services"
	checkpasswordresettoken "authsvc/internal/core/services/check_password_reset_token"
	loginwithemail "authsvc/internal/core/services/log_in_with_email"
	resetpassword "authsvc/internal/core/services/reset_password"
	sendpasswordresettoken "authsvc/internal/core/services/send_password_reset_token"
	signupwithemail "authsvc/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail         services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail          services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken  services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	CheckPasswordResetToken services.Service[checkpasswordresettoken.Input, checkpasswordresettoken.Result]
	ResetPassword           services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.UserIdentityGenerator,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.AccessTokenIssuer,
		deps.Now,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.PasswordResetLinkSender,
		deps.Config.BaseURL,
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)
	s.CheckPasswordResetToken = checkpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
