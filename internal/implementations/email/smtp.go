package email

import (
	c "authsvc/internal/core/domain/common"
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates
var templates embed.FS

var (
	passwordResetHTML = htmltemplate.Must(htmltemplate.ParseFS(templates, "templates/password_reset.html"))
	passwordResetText = texttemplate.Must(texttemplate.ParseFS(templates, "templates/password_reset.txt"))
)

const PasswordResetSubject = "Password reset"

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers password reset links through a plain SMTP server.
type SMTPSender struct {
	dialer dialer
	from   string
}

func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
	}
}

func (s *SMTPSender) SendPasswordResetLink(ctx context.Context, email c.Email, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := s.passwordResetMessage(email, link)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("could not send email via SMTP: %w", err)
	}
	return nil
}

func (s *SMTPSender) passwordResetMessage(email c.Email, link string) (*gomail.Message, error) {
	params := passwordResetTemplateParams{PasswordResetUrl: link}

	var html bytes.Buffer
	if err := passwordResetHTML.Execute(&html, params); err != nil {
		return nil, fmt.Errorf("could not render password reset email: %w", err)
	}
	var text bytes.Buffer
	if err := passwordResetText.Execute(&text, params); err != nil {
		return nil, fmt.Errorf("could not render password reset email: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", string(email))
	msg.SetHeader("Subject", PasswordResetSubject)
	msg.SetBody("text/plain", text.String())
	msg.AddAlternative("text/html", html.String())
	return msg, nil
}
