package email

import "context"

// Message is a single outgoing e-mail.
type Message struct {
	To      []string
	From    string // falls back to the sender's default when empty
	Subject string
	HTML    string
	Text    string
}

// Sender delivers e-mail through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (messageID string, err error)
}
