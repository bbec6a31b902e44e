package wizard

import "context"

// Status is the submission lifecycle state of a wizard instance.
type Status string

// Submission status constants.
const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Submitter converts the final fields snapshot into one outbound request.
// Implementations live in the application layer (persist + notify); the
// wizard only tracks the outcome.
type Submitter interface {
	Submit(ctx context.Context, fields Fields) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, fields Fields) error

// Submit implements Submitter.
func (f SubmitterFunc) Submit(ctx context.Context, fields Fields) error {
	return f(ctx, fields)
}

// Status returns the current submission status.
func (w *Wizard) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// LastError returns the error message of the most recent failed
// submission, or "" if none.
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Submit runs the submitter against a snapshot of the current fields and
// drives the status machine: idle/failed → submitting → succeeded|failed.
// At most one submission is in flight per wizard; a second Submit while
// submitting returns ErrSubmitInFlight. A failed submission leaves fields
// and the step index untouched so retry needs no re-entry; retry is a new
// explicit Submit call, never automatic.
// PRE: wizard is on its final step and the final step's gate holds
// POST: status is succeeded (submitter returned nil) or failed
func (w *Wizard) Submit(ctx context.Context, s Submitter) error {
	w.mu.Lock()
	switch w.status {
	case StatusSubmitting:
		w.mu.Unlock()
		return ErrSubmitInFlight
	case StatusSucceeded:
		w.mu.Unlock()
		return ErrAlreadyDone
	}
	if w.index != len(w.steps)-1 {
		w.mu.Unlock()
		return ErrNotOnFinalStep
	}
	if !w.stepValidLocked(w.index) {
		w.mu.Unlock()
		return ErrStepInvalid
	}
	w.status = StatusSubmitting
	snap := w.snapshotLocked()
	w.mu.Unlock()

	err := s.Submit(ctx, snap)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.status = StatusFailed
		w.errMsg = err.Error()
		return err
	}
	w.status = StatusSucceeded
	w.errMsg = ""
	return nil
}
