package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// CoachApplicationStore defines the store interface needed by the
// coach application orchestrators.
type CoachApplicationStore interface {
	GetByID(ctx context.Context, id string) (coachapp.Application, error)
	GetPendingByAccountID(ctx context.Context, accountID string) (coachapp.Application, error)
	Save(ctx context.Context, a coachapp.Application) error
}

// SubmitCoachApplicationInput carries the submitted wizard snapshot and
// the applicant's identity.
type SubmitCoachApplicationInput struct {
	AccountID string
	Fields    wizard.Fields
}

// SubmitCoachApplicationDeps holds dependencies for the submission.
type SubmitCoachApplicationDeps struct {
	ApplicationStore CoachApplicationStore
	GenerateID       func() string
	Now              func() time.Time
}

// ErrApplicationOpen is returned when the account already has an
// undecided application.
var ErrApplicationOpen = errors.New("an application is already awaiting review")

// ExecuteSubmitCoachApplication turns a completed application wizard
// into a pending Application awaiting admin review.
// PRE: AccountID is non-empty; the wizard's final gate held
// POST: Application persisted with status pending
// INVARIANT: An account has at most one undecided application
func ExecuteSubmitCoachApplication(ctx context.Context, input SubmitCoachApplicationInput, deps SubmitCoachApplicationDeps) (coachapp.Application, error) {
	if input.AccountID == "" {
		return coachapp.Application{}, coachapp.ErrEmptyApplicantID
	}
	if _, err := deps.ApplicationStore.GetPendingByAccountID(ctx, input.AccountID); err == nil {
		return coachapp.Application{}, ErrApplicationOpen
	}

	app := coachapp.FromFields(input.Fields)
	app.ID = deps.GenerateID()
	app.AccountID = input.AccountID
	app.CreatedAt = deps.Now()

	if err := app.Validate(); err != nil {
		return coachapp.Application{}, err
	}
	if err := deps.ApplicationStore.Save(ctx, app); err != nil {
		return coachapp.Application{}, err
	}

	slog.Info("coachapp_event", "event", "application_submitted", "application_id", app.ID, "account_id", app.AccountID)
	return app, nil
}
