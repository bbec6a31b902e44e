package goal

import (
	"errors"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// Domain errors
var (
	ErrEmptyTitle    = errors.New("title is required")
	ErrEmptyPlayerID = errors.New("player ID is required")
	ErrZeroTarget    = errors.New("target must be greater than zero")
	ErrInvalidDates  = errors.New("end date must be after start date")
)

// Goal represents a player's personal training goal (e.g., "200 third-shot
// drops in June").
type Goal struct {
	ID          string
	PlayerID    string
	Title       string
	Description string
	Target      int    // e.g., 200
	Unit        string // e.g., "drills", "matches", "sessions"
	StartDate   time.Time
	EndDate     time.Time
	Progress    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the Goal has valid data.
// PRE: Goal struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Goal) Validate() error {
	if g.Title == "" {
		return ErrEmptyTitle
	}
	if g.PlayerID == "" {
		return ErrEmptyPlayerID
	}
	if g.Target <= 0 {
		return ErrZeroTarget
	}
	if !g.EndDate.After(g.StartDate) {
		return ErrInvalidDates
	}
	return nil
}

// UpdateProgress updates the progress value.
// PRE: progress >= 0
// POST: Progress field is updated, UpdatedAt is set
func (g *Goal) UpdateProgress(progress int, now time.Time) {
	if progress < 0 {
		progress = 0
	}
	g.Progress = progress
	g.UpdatedAt = now
}

// IsActiveForDate checks if the goal is active on a given date.
// PRE: date is valid
// POST: returns true if date falls within StartDate and EndDate (inclusive)
func (g *Goal) IsActiveForDate(date time.Time) bool {
	dateStr := date.Format("2006-01-02")
	startStr := g.StartDate.Format("2006-01-02")
	endStr := g.EndDate.Format("2006-01-02")
	return dateStr >= startStr && dateStr <= endStr
}

// ProgressPercentage returns the completion percentage (0-100).
// PRE: Target > 0
// POST: returns percentage as integer (capped at 100)
func (g *Goal) ProgressPercentage() int {
	if g.Target <= 0 {
		return 0
	}
	pct := (g.Progress * 100) / g.Target
	if pct > 100 {
		return 100
	}
	return pct
}

// Wizard field keys for the goal creation flow.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTarget      = "target"
	FieldUnit        = "unit"
	FieldStartDate   = "startDate" // YYYY-MM-DD
	FieldEndDate     = "endDate"
)

// Steps returns the two-step goal creation wizard definition.
func Steps() []wizard.StepDefinition {
	return []wizard.StepDefinition{
		{
			Name: "details",
			Valid: wizard.All(
				wizard.NonEmpty(FieldTitle),
				wizard.Positive(FieldTarget),
			),
		},
		{
			Name:  "timeframe",
			Valid: datesInOrder,
		},
	}
}

// datesInOrder checks both dates parse and the end falls after the start.
func datesInOrder(f wizard.Fields) bool {
	start, err := time.Parse("2006-01-02", wizard.StringField(f, FieldStartDate))
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", wizard.StringField(f, FieldEndDate))
	if err != nil {
		return false
	}
	return end.After(start)
}

// FromFields maps a completed wizard snapshot onto a Goal. Identity and
// timestamps are the caller's responsibility.
// PRE: the timeframe gate held, so both dates parse
func FromFields(f wizard.Fields) Goal {
	start, _ := time.Parse("2006-01-02", wizard.StringField(f, FieldStartDate))
	end, _ := time.Parse("2006-01-02", wizard.StringField(f, FieldEndDate))
	return Goal{
		Title:       wizard.StringField(f, FieldTitle),
		Description: wizard.StringField(f, FieldDescription),
		Target:      int(wizard.NumberField(f, FieldTarget)),
		Unit:        wizard.StringField(f, FieldUnit),
		StartDate:   start,
		EndDate:     end,
	}
}
