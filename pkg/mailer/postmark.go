package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkSender creates a Postmark-backed email sender.
func NewPostmarkSender(serverToken, accountToken, from string) (EmailSender, error) {
	if serverToken == "" {
		return nil, errors.New("mailer: postmark server token is required")
	}
	if from == "" {
		return nil, errors.New("mailer: sender address is required")
	}
	return &postmarkSender{
		client: postmark.NewClient(serverToken, accountToken),
		from:   from,
	}, nil
}

func (s *postmarkSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.from,
		To:       params.SendTo,
		Subject:  params.Subject,
		TextBody: params.Body,
		Tag:      params.Tag,
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message))
	}
	return nil
}
