package web

import (
	"errors"
	"net/http"

	matchStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/match"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/projections"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// handleRecordMatch handles POST /api/matches: the single-shot path for
// clients that collect the whole form before submitting. The wizard
// endpoints cover the step-by-step path; both feed the same
// orchestrator.
func handleRecordMatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var fields wizard.Fields
	if err := strictDecode(r, &fields); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := orchestrators.ExecuteRecordMatch(r.Context(), orchestrators.RecordMatchInput{
		RecordedBy: sess.AccountID,
		Fields:     fields,
	}, orchestrators.RecordMatchDeps{
		MatchStore:    stores.MatchStore,
		PlayerStore:   stores.PlayerStore,
		StandingStore: stores.StandingStore,
		GenerateID:    generateID,
		Now:           timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrUnknownPlayer) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"matchId":       result.Match.ID,
		"pointsAwarded": result.PointsAwarded,
	})
}

// handleListMatches handles GET /api/matches with optional format
// filter and pagination.
func handleListMatches(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	filter := matchStore.ListFilter{
		Limit:  queryInt(r, "limit", 50, 200),
		Offset: queryInt(r, "offset", 0, 0),
		Format: r.URL.Query().Get("format"),
	}
	matches, err := stores.MatchStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

// handleGetMatch handles GET /api/matches/{id}.
func handleGetMatch(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	m, err := stores.MatchStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "match not found")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// handlePlayerMatches handles GET /api/players/{id}/matches: the
// player's recent match history, newest first.
func handlePlayerMatches(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	limit := queryInt(r, "limit", 20, 100)
	matches, err := stores.MatchStore.ListByPlayer(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

// handleLeaderboard handles GET /api/leaderboard. Leaderboards are
// public within the community: any signed-in user can view.
func handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	limit := queryInt(r, "limit", 25, 100)
	offset := queryInt(r, "offset", 0, 0)

	lb, err := projections.BuildLeaderboard(r.Context(), limit, offset, stores.StandingStore, stores.PlayerStore)
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lb)
}
