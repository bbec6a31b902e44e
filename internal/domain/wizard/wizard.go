// Package wizard implements the linear multi-step form engine used by the
// coach application, match recording, and goal creation flows. A Wizard owns
// an ordered list of steps, the accumulated form fields, and the submission
// lifecycle; callers supply per-step validators and a Submitter.
package wizard

import (
	"errors"
	"sync"
)

// Domain errors
var (
	ErrNoSteps         = errors.New("wizard requires at least one step")
	ErrStepInvalid     = errors.New("current step is not complete")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
	ErrAlreadyDone     = errors.New("wizard has already been submitted")
	ErrNotOnFinalStep  = errors.New("submission is only allowed from the final step")
)

// Fields is the accumulated key→value record of all form inputs collected
// across steps. Values are whatever the step handed in (strings, numbers,
// bools, string slices).
type Fields map[string]any

// Predicate is a pure per-step validation gate over the current fields.
// It must be deterministic and perform no I/O.
type Predicate func(Fields) bool

// StepDefinition describes one step of a wizard: a stable name for the
// client to render, and the gate that must hold before leaving the step
// going forward. A nil Valid means the step is always passable.
type StepDefinition struct {
	Name  string
	Valid Predicate
}

// Wizard holds the state of one active wizard instance. All methods are
// safe for concurrent use; HTTP handlers for the same session may race.
type Wizard struct {
	mu     sync.Mutex
	steps  []StepDefinition
	index  int
	fields Fields
	status Status
	errMsg string
}

// New creates a Wizard positioned on the first step with empty fields.
// PRE: steps is non-empty
// POST: Returns a Wizard with index 0, status idle
func New(steps []StepDefinition) (*Wizard, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Wizard{
		steps:  steps,
		fields: make(Fields),
		status: StatusIdle,
	}, nil
}

// StepCount returns the number of steps.
func (w *Wizard) StepCount() int {
	return len(w.steps)
}

// StepIndex returns the current zero-based step index.
func (w *Wizard) StepIndex() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index
}

// StepName returns the name of the current step.
func (w *Wizard) StepName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.steps[w.index].Name
}

// IsFirst reports whether the wizard is on the first step.
func (w *Wizard) IsFirst() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index == 0
}

// IsLast reports whether the wizard is on the final step.
func (w *Wizard) IsLast() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index == len(w.steps)-1
}

// Update shallow-merges partial into the accumulated fields. Later writes
// to the same key overwrite earlier ones; keys are never removed (clearing
// a field means writing its empty sentinel).
// PRE: partial may be nil or empty (no-op)
// POST: fields contains every key of partial with partial's values
func (w *Wizard) Update(partial Fields) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for k, v := range partial {
		w.fields[k] = v
	}
}

// Snapshot returns a copy of the accumulated fields for read-only use
// (validation, payload mapping, debug display).
func (w *Wizard) Snapshot() Fields {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Wizard) snapshotLocked() Fields {
	out := make(Fields, len(w.fields))
	for k, v := range w.fields {
		out[k] = v
	}
	return out
}

// CanAdvance reports whether the current step's gate holds for the current
// fields. Safe to call repeatedly; the gate is pure.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stepValidLocked(w.index)
}

func (w *Wizard) stepValidLocked(i int) bool {
	if w.steps[i].Valid == nil {
		return true
	}
	return w.steps[i].Valid(w.fields)
}

// Next advances one step forward if the current step's gate holds.
// The index never jumps and never passes the final step.
// PRE: none
// POST: index incremented by one iff the gate held and not on the last
// step; otherwise unchanged. Returns whether the index moved.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.stepValidLocked(w.index) {
		return false
	}
	if w.index >= len(w.steps)-1 {
		return false
	}
	w.index++
	return true
}

// Previous retreats one step. Backward navigation is always allowed so
// users can correct earlier answers; no validation is checked.
// POST: index decremented by one, floored at 0. Returns whether it moved.
func (w *Wizard) Previous() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.index == 0 {
		return false
	}
	w.index--
	return true
}

// Validate runs the gate for an arbitrary step index against the current
// fields. Out-of-range indexes are invalid.
func (w *Wizard) Validate(stepIndex int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if stepIndex < 0 || stepIndex >= len(w.steps) {
		return false
	}
	return w.stepValidLocked(stepIndex)
}
