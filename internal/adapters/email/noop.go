package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// NoopSender records messages instead of delivering them.
// Used in development and tests.
type NoopSender struct {
	mu   sync.Mutex
	sent []Message
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs and records msg.
func (s *NoopSender) Send(_ context.Context, msg Message) (string, error) {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	slog.Info("email_event", "event", "noop_send", "to", msg.To, "subject", msg.Subject)
	return fmt.Sprintf("noop-%d", time.Now().UnixNano()), nil
}

// Sent returns a copy of every recorded message.
func (s *NoopSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}
