package test

import (
	"context"
	"sync"

	"github.com/maisonforma/storefront/internal/adapter/mailer"
)

// MailerStub records sent messages and optionally fails every send.
type MailerStub struct {
	sync.Mutex
	Sent []mailer.Message
	Err  error
}

// Send appends the message unless a stub error is configured.
func (s *MailerStub) Send(ctx context.Context, msg mailer.Message) error {
	s.Lock()
	defer s.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Sent = append(s.Sent, msg)
	return nil
}

// Messages returns a copy of everything sent so far.
func (s *MailerStub) Messages() []mailer.Message {
	s.Lock()
	defer s.Unlock()
	return append([]mailer.Message(nil), s.Sent...)
}
