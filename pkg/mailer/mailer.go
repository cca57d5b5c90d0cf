package mailer

import (
	"context"
	"errors"
)

var ErrSendFailed = errors.New("mailer: failed to send email")

// EmailSender delivers transactional mail. The auth flow only ever
// sends the password-reset message, but the interface stays generic so
// providers can be swapped without touching the use cases.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo  string
	Subject string
	Body    string
	Tag     string
}
