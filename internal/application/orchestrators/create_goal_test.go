package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/goal"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

func goalFields() wizard.Fields {
	return wizard.Fields{
		"title":       "Third-shot drop consistency",
		"description": "Land 200 drops in the kitchen",
		"target":      float64(200),
		"unit":        "drills",
		"startDate":   "2026-06-01",
		"endDate":     "2026-06-30",
	}
}

func TestExecuteCreateGoal_Valid(t *testing.T) {
	store := newMockGoalStore()
	g, err := ExecuteCreateGoal(context.Background(), CreateGoalInput{
		PlayerID: "p1",
		Fields:   goalFields(),
	}, CreateGoalDeps{
		GoalStore:  store,
		GenerateID: fixedID,
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Target != 200 || g.Progress != 0 {
		t.Errorf("goal = %+v, want target 200 and zero progress", g)
	}
	if _, ok := store.goals["test-id-001"]; !ok {
		t.Error("expected goal to be persisted")
	}
}

func TestExecuteCreateGoal_DatesOutOfOrder(t *testing.T) {
	fields := goalFields()
	fields["startDate"] = "2026-06-30"
	fields["endDate"] = "2026-06-01"

	_, err := ExecuteCreateGoal(context.Background(), CreateGoalInput{
		PlayerID: "p1",
		Fields:   fields,
	}, CreateGoalDeps{
		GoalStore:  newMockGoalStore(),
		GenerateID: fixedID,
		Now:        fixedNow,
	})
	if !errors.Is(err, goal.ErrInvalidDates) {
		t.Errorf("expected ErrInvalidDates, got %v", err)
	}
}

func TestExecuteUpdateGoalProgress_OwnerOnly(t *testing.T) {
	store := newMockGoalStore()
	deps := CreateGoalDeps{GoalStore: store, GenerateID: fixedID, Now: fixedNow}

	created, err := ExecuteCreateGoal(context.Background(), CreateGoalInput{
		PlayerID: "p1",
		Fields:   goalFields(),
	}, deps)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := ExecuteUpdateGoalProgress(context.Background(), UpdateGoalProgressInput{
		GoalID: created.ID, PlayerID: "p1", Progress: 120,
	}, deps)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Progress != 120 || updated.ProgressPercentage() != 60 {
		t.Errorf("progress = %d (%d%%), want 120 (60%%)", updated.Progress, updated.ProgressPercentage())
	}

	_, err = ExecuteUpdateGoalProgress(context.Background(), UpdateGoalProgressInput{
		GoalID: created.ID, PlayerID: "p2", Progress: 10,
	}, deps)
	if !errors.Is(err, ErrNotGoalOwner) {
		t.Errorf("expected ErrNotGoalOwner, got %v", err)
	}
}
