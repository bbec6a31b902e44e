package outbox_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/outbox"
)

var now = time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

// TestEntry_RetryLifecycle tests attempt bookkeeping through failure to
// exhaustion.
func TestEntry_RetryLifecycle(t *testing.T) {
	e := outbox.NewEmailEntry("o1", `{"to":["a@b.c"]}`, now)
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !e.CanRetry() || e.IsTerminal() {
		t.Fatal("fresh entry should be retryable and non-terminal")
	}

	sendErr := errors.New("resend: 500")
	for i := 0; i < outbox.DefaultMaxAttempts; i++ {
		if !e.CanRetry() {
			t.Fatalf("attempt %d: entry stopped being retryable early", i)
		}
		e.MarkAttempt(now.Add(time.Duration(i) * time.Minute))
		e.MarkFailed(sendErr)
	}
	if e.CanRetry() {
		t.Error("entry still retryable after exhausting attempts")
	}
	if !e.IsTerminal() || e.Status != outbox.StatusFailed {
		t.Errorf("status = %s, want terminal failed", e.Status)
	}
	if e.ErrorMessage == "" {
		t.Error("failure recorded no error message")
	}
}

// TestEntry_MarkSuccess tests delivery clears the error and is terminal.
func TestEntry_MarkSuccess(t *testing.T) {
	e := outbox.NewEmailEntry("o1", `{}`, now)
	e.MarkAttempt(now)
	e.MarkFailed(errors.New("timeout"))
	e.MarkAttempt(now.Add(time.Minute))
	e.MarkSuccess("msg-123")

	if e.Status != outbox.StatusDone || !e.IsTerminal() {
		t.Errorf("status = %s, want done", e.Status)
	}
	if e.ExternalID != "msg-123" || e.ErrorMessage != "" {
		t.Error("success did not record message ID and clear the error")
	}
}

// TestEntry_NextRetryDelay tests exponential backoff with a cap.
func TestEntry_NextRetryDelay(t *testing.T) {
	base, max := time.Minute, time.Hour
	e := outbox.Entry{}
	want := []time.Duration{time.Minute, 2 * time.Minute, 4 * time.Minute, 8 * time.Minute}
	for i, w := range want {
		e.Attempts = i
		if got := e.NextRetryDelay(base, max); got != w {
			t.Errorf("attempts=%d: delay = %v, want %v", i, got, w)
		}
	}
	e.Attempts = 10
	if got := e.NextRetryDelay(base, max); got != max {
		t.Errorf("delay = %v, want capped %v", got, max)
	}
}

// TestEntry_Validate tests required fields and the default attempt budget.
func TestEntry_Validate(t *testing.T) {
	e := outbox.Entry{ActionType: outbox.ActionTypeEmail, Payload: "{}", CreatedAt: now}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if e.MaxAttempts != outbox.DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want default %d", e.MaxAttempts, outbox.DefaultMaxAttempts)
	}

	bad := outbox.Entry{Payload: "{}", CreatedAt: now}
	if err := bad.Validate(); err != outbox.ErrEmptyActionType {
		t.Errorf("expected ErrEmptyActionType, got %v", err)
	}
	bad = outbox.Entry{ActionType: outbox.ActionTypeEmail, CreatedAt: now}
	if err := bad.Validate(); err != outbox.ErrEmptyPayload {
		t.Errorf("expected ErrEmptyPayload, got %v", err)
	}
}
