package notification

import "context"

// Mailer sends transactional emails.
type Mailer interface {
	SendConfirmationEmail(ctx context.Context, toEmail, toName, token string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, token string) error
}
