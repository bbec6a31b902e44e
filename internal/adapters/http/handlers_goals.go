package web

import (
	"errors"
	"net/http"

	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
)

// handleListGoals handles GET /api/goals: the session player's goals.
func handleListGoals(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	p, ok := currentPlayer(w, r, sess)
	if !ok {
		return
	}

	goals, err := stores.GoalStore.ListByPlayer(r.Context(), p.ID)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// handleGoalProgress handles POST /api/goals/{id}/progress. Only the
// owning player may record progress.
func handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	p, ok := currentPlayer(w, r, sess)
	if !ok {
		return
	}

	var input struct {
		Progress int `json:"progress"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	g, err := orchestrators.ExecuteUpdateGoalProgress(r.Context(), orchestrators.UpdateGoalProgressInput{
		GoalID:   r.PathValue("id"),
		PlayerID: p.ID,
		Progress: input.Progress,
	}, orchestrators.CreateGoalDeps{
		GoalStore:  stores.GoalStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNotGoalOwner) {
			respondError(w, http.StatusForbidden, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, g)
}

// handleDeleteGoal handles DELETE /api/goals/{id}.
func handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	p, ok := currentPlayer(w, r, sess)
	if !ok {
		return
	}

	g, err := stores.GoalStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "goal not found")
		return
	}
	if g.PlayerID != p.ID {
		respondError(w, http.StatusForbidden, orchestrators.ErrNotGoalOwner.Error())
		return
	}
	if err := stores.GoalStore.Delete(r.Context(), g.ID); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
