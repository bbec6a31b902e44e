// Package coachapp models the coach application: the five-step wizard a
// player completes to apply for Level 1 coach certification, and the
// admin review lifecycle of the submitted application.
package coachapp

import (
	"errors"
	"strings"
	"time"
)

// Business rule constants
const (
	// MinPhilosophyLength is the minimum teaching philosophy length.
	MinPhilosophyLength = 50

	StatusPending     = "pending"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// ValidSpecializations lists the coaching specializations an applicant
// may select.
var ValidSpecializations = []string{
	"beginners", "dinking", "serves", "strategy", "tournament_prep",
	"youth", "seniors", "fitness",
}

// Domain errors
var (
	ErrEmptyApplicantID    = errors.New("applicant account ID is required")
	ErrEmptyName           = errors.New("applicant name is required")
	ErrPhilosophyTooShort  = errors.New("teaching philosophy must be at least 50 characters")
	ErrNoSpecializations   = errors.New("at least one specialization is required")
	ErrZeroExperience      = errors.New("years of experience must be greater than zero")
	ErrZeroRate            = errors.New("individual rate must be greater than zero")
	ErrMissingConsent      = errors.New("all three consents must be accepted")
	ErrAlreadyDecided      = errors.New("application has already been decided")
	ErrEmptyRejectReason   = errors.New("a rejection reason is required")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrBadSpecialization   = errors.New("unknown specialization")
)

// Application is one submitted coach application.
type Application struct {
	ID                 string
	AccountID          string
	Name               string
	Email              string
	Bio                string // markdown, rendered on the admin review page
	YearsExperience    int
	TeachingPhilosophy string
	Specializations    []string
	Certifications     []string
	IndividualRate     int // dollars per hour for 1:1 sessions
	GroupRate          int // dollars per hour per player for group sessions

	// Level 1 consent flags, all required at submission.
	UnderstandsLevel1      bool
	CommitsToCertification bool
	AgreesToTerms          bool

	Status       string
	RejectReason string
	ReviewedBy   string
	CreatedAt    time.Time
	DecidedAt    time.Time
}

// Validate checks if the Application has valid data.
// PRE: Application struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Application) Validate() error {
	if a.AccountID == "" {
		return ErrEmptyApplicantID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if a.YearsExperience <= 0 {
		return ErrZeroExperience
	}
	if len(strings.TrimSpace(a.TeachingPhilosophy)) < MinPhilosophyLength {
		return ErrPhilosophyTooShort
	}
	if len(a.Specializations) == 0 {
		return ErrNoSpecializations
	}
	for _, s := range a.Specializations {
		if !isValidSpecialization(s) {
			return ErrBadSpecialization
		}
	}
	if a.IndividualRate <= 0 {
		return ErrZeroRate
	}
	if !a.UnderstandsLevel1 || !a.CommitsToCertification || !a.AgreesToTerms {
		return ErrMissingConsent
	}
	switch a.Status {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
	default:
		return ErrInvalidStatus
	}
	return nil
}

// IsDecided returns true once the application is approved or rejected.
// INVARIANT: Application fields are not mutated
func (a *Application) IsDecided() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}

// StartReview moves a pending application under review.
// PRE: Application is pending
// POST: Status is under_review
func (a *Application) StartReview(reviewerID string) error {
	if a.IsDecided() {
		return ErrAlreadyDecided
	}
	a.Status = StatusUnderReview
	a.ReviewedBy = reviewerID
	return nil
}

// Approve marks the application approved. The caller is responsible for
// promoting the linked account to the coach role.
// PRE: Application is not already decided
// POST: Status is approved, DecidedAt set
func (a *Application) Approve(reviewerID string, now time.Time) error {
	if a.IsDecided() {
		return ErrAlreadyDecided
	}
	a.Status = StatusApproved
	a.ReviewedBy = reviewerID
	a.DecidedAt = now
	return nil
}

// Reject marks the application rejected with a reason shown to the
// applicant.
// PRE: Application is not already decided, reason is non-empty
// POST: Status is rejected, RejectReason and DecidedAt set
func (a *Application) Reject(reviewerID, reason string, now time.Time) error {
	if a.IsDecided() {
		return ErrAlreadyDecided
	}
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyRejectReason
	}
	a.Status = StatusRejected
	a.ReviewedBy = reviewerID
	a.RejectReason = reason
	a.DecidedAt = now
	return nil
}

func isValidSpecialization(s string) bool {
	for _, v := range ValidSpecializations {
		if v == s {
			return true
		}
	}
	return false
}
