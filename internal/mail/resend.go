// Package mail provides the outbound notification sink used by the
// welcome worker.
package mail

import (
	"context"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

type resendSender struct {
	client *resend.Client
	from   string
}

type ResendSenderDependencies struct {
	APIKey string
	From   string
}

func NewResendSender(deps ResendSenderDependencies) domain.MailSender {
	return &resendSender{
		client: resend.NewClient(deps.APIKey),
		from:   deps.From,
	}
}

func (s *resendSender) Send(ctx context.Context, to, subject, body string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}

	return nil
}

type logSender struct{}

// NewLogSender returns a sink that only logs the message. Used when no
// mail provider is configured.
func NewLogSender() domain.MailSender {
	return logSender{}
}

func (logSender) Send(_ context.Context, to, subject, body string) error {
	log.Info().
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("Mail delivery disabled, logging instead")

	return nil
}
