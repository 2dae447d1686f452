package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends e-mail via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a ResendSender with a default from address.
// PRE: apiKey is a valid Resend API key
// POST: Returns a ready-to-use sender
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

// Send queues msg for delivery and returns the Resend message ID.
// PRE: msg has at least one recipient and a subject
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	from := msg.From
	if from == "" {
		from = s.from
	}
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return "", fmt.Errorf("resend send failed: %w", err)
	}
	slog.Info("email_event", "event", "resend_sent", "message_id", sent.Id, "to", msg.To)
	return sent.Id, nil
}
