// Package email sends transactional mail for the platform: welcome
// messages and coach application decisions. Sends that fail are queued
// in the outbox for retry rather than retried inline.
package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send one email.
type SendRequest struct {
	To      []string
	From    string // sender address, e.g. "Pickle+ <noreply@pickleplus.app>"; empty uses the configured default
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult contains the provider's response.
type SendResult struct {
	MessageID string // provider message ID, recorded on the outbox entry
	SentAt    time.Time
}

// Sender delivers email via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
