package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/goal"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// GoalStore defines the store interface needed by the goal
// orchestrators.
type GoalStore interface {
	GetByID(ctx context.Context, id string) (goal.Goal, error)
	Save(ctx context.Context, g goal.Goal) error
}

// CreateGoalInput carries the submitted wizard snapshot and the owning
// player.
type CreateGoalInput struct {
	PlayerID string
	Fields   wizard.Fields
}

// CreateGoalDeps holds dependencies for CreateGoal.
type CreateGoalDeps struct {
	GoalStore  GoalStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCreateGoal turns a completed goal wizard into a persisted
// Goal.
// PRE: PlayerID is non-empty; the wizard's timeframe gate held
// POST: Goal persisted with zero progress
func ExecuteCreateGoal(ctx context.Context, input CreateGoalInput, deps CreateGoalDeps) (goal.Goal, error) {
	if input.PlayerID == "" {
		return goal.Goal{}, goal.ErrEmptyPlayerID
	}

	now := deps.Now()
	g := goal.FromFields(input.Fields)
	g.ID = deps.GenerateID()
	g.PlayerID = input.PlayerID
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := g.Validate(); err != nil {
		return goal.Goal{}, err
	}
	if err := deps.GoalStore.Save(ctx, g); err != nil {
		return goal.Goal{}, err
	}

	slog.Info("goal_event", "event", "goal_created", "goal_id", g.ID, "player_id", g.PlayerID, "target", g.Target)
	return g, nil
}

// UpdateGoalProgressInput carries a progress update.
type UpdateGoalProgressInput struct {
	GoalID   string
	PlayerID string
	Progress int
}

// ErrNotGoalOwner is returned when a player updates someone else's
// goal.
var ErrNotGoalOwner = errors.New("goal belongs to another player")

// ExecuteUpdateGoalProgress records progress against a goal.
// PRE: Goal exists and belongs to the player
// POST: Progress and UpdatedAt persisted
func ExecuteUpdateGoalProgress(ctx context.Context, input UpdateGoalProgressInput, deps CreateGoalDeps) (goal.Goal, error) {
	g, err := deps.GoalStore.GetByID(ctx, input.GoalID)
	if err != nil {
		return goal.Goal{}, err
	}
	if g.PlayerID != input.PlayerID {
		return goal.Goal{}, ErrNotGoalOwner
	}

	g.UpdateProgress(input.Progress, deps.Now())
	if err := deps.GoalStore.Save(ctx, g); err != nil {
		return goal.Goal{}, err
	}

	slog.Info("goal_event", "event", "goal_progress_updated", "goal_id", g.ID, "progress", g.Progress)
	return g, nil
}
