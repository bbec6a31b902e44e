package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	emailAdapter "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/email"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/account"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
)

// AccountStoreForReview defines the account store interface needed by
// the review orchestrator.
type AccountStoreForReview interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// Review decisions.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ReviewCoachApplicationInput carries the reviewer's decision.
type ReviewCoachApplicationInput struct {
	ApplicationID string
	ReviewerID    string
	Decision      string
	RejectReason  string
}

// ReviewCoachApplicationDeps holds dependencies for the review.
type ReviewCoachApplicationDeps struct {
	ApplicationStore CoachApplicationStore
	AccountStore     AccountStoreForReview
	Outbox           OutboxEnqueuer
	GenerateID       func() string
	Now              func() time.Time
}

// ErrUnknownDecision is returned for a decision other than approve or
// reject.
var ErrUnknownDecision = errors.New("decision must be 'approve' or 'reject'")

// ExecuteReviewCoachApplication applies an admin's decision to a
// pending application. Approval promotes the applicant's account to the
// coach role; either outcome queues a notification email.
// PRE: Application exists and is undecided; reviewer is an admin
// (enforced at the HTTP layer)
// POST: Application decided; on approval the account role is coach
func ExecuteReviewCoachApplication(ctx context.Context, input ReviewCoachApplicationInput, deps ReviewCoachApplicationDeps) (coachapp.Application, error) {
	if input.ReviewerID == "" {
		return coachapp.Application{}, errors.New("reviewer ID is required")
	}

	app, err := deps.ApplicationStore.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return coachapp.Application{}, err
	}

	now := deps.Now()
	var notice emailAdapter.SendRequest

	switch input.Decision {
	case DecisionApprove:
		if err := app.Approve(input.ReviewerID, now); err != nil {
			return coachapp.Application{}, err
		}
		acct, err := deps.AccountStore.GetByID(ctx, app.AccountID)
		if err != nil {
			return coachapp.Application{}, err
		}
		if err := acct.PromoteToCoach(); err != nil && !errors.Is(err, account.ErrAlreadyCoach) {
			return coachapp.Application{}, err
		}
		if err := deps.AccountStore.Save(ctx, acct); err != nil {
			return coachapp.Application{}, err
		}
		notice = emailAdapter.CoachApprovedEmail(app.Email, app.Name)

	case DecisionReject:
		if err := app.Reject(input.ReviewerID, input.RejectReason, now); err != nil {
			return coachapp.Application{}, err
		}
		notice = emailAdapter.CoachRejectedEmail(app.Email, app.Name, app.RejectReason)

	default:
		return coachapp.Application{}, ErrUnknownDecision
	}

	if err := deps.ApplicationStore.Save(ctx, app); err != nil {
		return coachapp.Application{}, err
	}

	enqueueEmail(ctx, deps.Outbox, deps.GenerateID(), now, notice)

	slog.Info("coachapp_event", "event", "application_decided",
		"application_id", app.ID, "decision", app.Status, "reviewer_id", input.ReviewerID)
	return app, nil
}

// StartCoachApplicationReviewInput identifies the application an admin
// opened.
type StartCoachApplicationReviewInput struct {
	ApplicationID string
	ReviewerID    string
}

// ExecuteStartCoachApplicationReview moves a pending application under
// review so other admins see it is being handled.
// PRE: Application exists and is undecided
// POST: Application status is under_review
func ExecuteStartCoachApplicationReview(ctx context.Context, input StartCoachApplicationReviewInput, deps ReviewCoachApplicationDeps) (coachapp.Application, error) {
	app, err := deps.ApplicationStore.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return coachapp.Application{}, err
	}
	if err := app.StartReview(input.ReviewerID); err != nil {
		return coachapp.Application{}, err
	}
	if err := deps.ApplicationStore.Save(ctx, app); err != nil {
		return coachapp.Application{}, err
	}
	slog.Info("coachapp_event", "event", "review_started", "application_id", app.ID, "reviewer_id", input.ReviewerID)
	return app, nil
}
