package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	emailAdapter "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/email"
	domainOutbox "github.com/mightymaxworks/pickleplus-sub011/internal/domain/outbox"
)

// OutboxEnqueuer is the minimal store surface orchestrators need to
// queue an entry.
type OutboxEnqueuer interface {
	Save(ctx context.Context, e domainOutbox.Entry) error
}

// OutboxStoreForWorker defines the store interface needed by the
// delivery worker.
type OutboxStoreForWorker interface {
	Save(ctx context.Context, e domainOutbox.Entry) error
	ListPending(ctx context.Context, limit int) ([]domainOutbox.Entry, error)
}

// emailPayload is the JSON shape stored in an email entry's payload.
type emailPayload struct {
	To      []string `json:"to"`
	From    string   `json:"from,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"replyTo,omitempty"`
}

// enqueueEmail queues a send request in the outbox. Failures are logged
// rather than returned: a full outbox table must not fail the
// registration or review that triggered the email.
func enqueueEmail(ctx context.Context, store OutboxEnqueuer, id string, now time.Time, req emailAdapter.SendRequest) {
	payload, err := json.Marshal(emailPayload{
		To: req.To, From: req.From, Subject: req.Subject, HTML: req.HTML, ReplyTo: req.ReplyTo,
	})
	if err != nil {
		slog.Error("outbox_enqueue_failed", "error", err, "subject", req.Subject)
		return
	}
	entry := domainOutbox.NewEmailEntry(id, string(payload), now)
	if err := store.Save(ctx, entry); err != nil {
		slog.Error("outbox_enqueue_failed", "error", err, "entry_id", id)
	}
}

// OutboxRetryDeps provides the dependencies for the delivery worker.
type OutboxRetryDeps struct {
	OutboxStore OutboxStoreForWorker
	EmailSender emailAdapter.Sender
	Now         func() time.Time
}

// ExecuteOutboxRetry delivers pending and retryable outbox entries,
// respecting per-entry exponential backoff and attempt budgets.
// PRE: Deps are valid and store is connected
// POST: All eligible entries are attempted once, results persisted
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps) error {
	entries, err := deps.OutboxStore.ListPending(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list deliverable outbox entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	slog.Info("outbox_delivery_start", "count", len(entries))

	baseDelay := 1 * time.Minute
	maxDelay := 1 * time.Hour
	now := deps.Now()

	var attempted, succeeded, failed int
	for _, entry := range entries {
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(baseDelay, maxDelay))
			if now.Before(nextRetry) {
				continue
			}
		}

		attempted++
		entry.MarkAttempt(now)

		externalID, err := deliverEmail(ctx, entry, deps.EmailSender)
		if err != nil {
			entry.MarkFailed(err)
			failed++
			slog.Error("outbox_delivery_failed", "entry_id", entry.ID, "attempt", entry.Attempts, "error", err)
		} else {
			entry.MarkSuccess(externalID)
			succeeded++
			slog.Info("outbox_delivered", "entry_id", entry.ID, "attempt", entry.Attempts, "external_id", externalID)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_delivery_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	slog.Info("outbox_delivery_complete", "attempted", attempted, "succeeded", succeeded, "failed", failed)
	return nil
}

// deliverEmail sends one queued email and returns the provider message
// ID.
// PRE: Entry payload is a JSON emailPayload
// POST: Email delivered or error returned
func deliverEmail(ctx context.Context, entry domainOutbox.Entry, sender emailAdapter.Sender) (string, error) {
	if entry.ActionType != domainOutbox.ActionTypeEmail {
		return "", fmt.Errorf("unknown action type: %s", entry.ActionType)
	}
	var payload emailPayload
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal email payload: %w", err)
	}
	res, err := sender.Send(ctx, emailAdapter.SendRequest{
		To: payload.To, From: payload.From, Subject: payload.Subject,
		HTML: payload.HTML, ReplyTo: payload.ReplyTo,
	})
	if err != nil {
		return "", err
	}
	return res.MessageID, nil
}

// OutboxRetryConfig holds configuration for the delivery scheduler.
type OutboxRetryConfig struct {
	Interval time.Duration
	Enabled  bool
}

// DefaultOutboxRetryConfig returns sensible defaults.
func DefaultOutboxRetryConfig() OutboxRetryConfig {
	return OutboxRetryConfig{
		Interval: 1 * time.Minute,
		Enabled:  true,
	}
}

// StartOutboxRetryScheduler starts a background goroutine that
// periodically runs the delivery worker.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started, returns cancel function
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps); err != nil {
					slog.Error("outbox_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
