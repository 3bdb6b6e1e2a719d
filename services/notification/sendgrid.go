package notification

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"musa/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	confirmationSubject = "Confirm your email - MUSA"
	resetSubject        = "Reset your password - MUSA"
)

// SendGridMailer implements Mailer on top of SendGrid.
type SendGridMailer struct {
	client      *sendgrid.Client
	fromEmail   string
	fromName    string
	frontendURL string
}

func NewSendGridMailer(cfg *config.Config) (*SendGridMailer, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, errors.New("sendgrid api key is not configured")
	}
	return &SendGridMailer{
		client:      sendgrid.NewSendClient(cfg.SendGridAPIKey),
		fromEmail:   cfg.EmailFrom,
		fromName:    cfg.EmailFromName,
		frontendURL: cfg.FrontendURL,
	}, nil
}

// ConfirmationURL is the frontend page that completes email verification.
func ConfirmationURL(frontendURL, token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", frontendURL, url.QueryEscape(token))
}

// ResetURL is the frontend page where the user picks a new password.
func ResetURL(frontendURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", frontendURL, url.QueryEscape(token))
}

func (m *SendGridMailer) SendConfirmationEmail(ctx context.Context, toEmail, toName, token string) error {
	plain, html := confirmationBody(toName, ConfirmationURL(m.frontendURL, token))
	return m.send(ctx, "confirmation", confirmationSubject, toEmail, toName, plain, html)
}

func (m *SendGridMailer) SendPasswordResetEmail(ctx context.Context, toEmail, toName, token string) error {
	plain, html := resetBody(toName, ResetURL(m.frontendURL, token))
	return m.send(ctx, "password reset", resetSubject, toEmail, toName, plain, html)
}

func (m *SendGridMailer) send(ctx context.Context, kind, subject, toEmail, toName, plain, html string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.fromEmail),
		subject,
		mail.NewEmail(toName, toEmail),
		plain,
		html,
	)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected %s email: %d %s", kind, resp.StatusCode, resp.Body)
	}
	return nil
}

func confirmationBody(name, link string) (string, string) {
	plain := fmt.Sprintf("Welcome to MUSA, %s!\n\nConfirm your email by opening this link:\n%s\n\nIf you did not create this account you can ignore this email.", name, link)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome to MUSA!</h2>
  <p>Thanks for signing up. Click the button below to activate your account:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4CAF50; color: white; padding: 14px 20px; text-decoration: none; display: inline-block; border-radius: 4px; font-weight: bold;">Confirm your email</a>
  </div>
  <p>If you did not create this account you can ignore this email.</p>
  <p>The MUSA team</p>
</div>`, link)
	return plain, html
}

func resetBody(name, link string) (string, string) {
	plain := fmt.Sprintf("Hi %s,\n\nYou asked to reset your MUSA password. Choose a new one here:\n%s\n\nThe link expires in one hour. If you did not ask for a reset you can ignore this email.", name, link)
	html := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Reset your password</h2>
  <p>You asked to reset your password. Click the button below to choose a new one:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4CAF50; color: white; padding: 14px 20px; text-decoration: none; display: inline-block; border-radius: 4px; font-weight: bold;">Reset password</a>
  </div>
  <p>If you did not ask for a reset you can ignore this email.</p>
  <p>The MUSA team</p>
</div>`, link)
	return plain, html
}
