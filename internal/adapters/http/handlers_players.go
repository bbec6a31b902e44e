package web

import (
	"net/http"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/middleware"
	playerStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/player"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
)

// playerResponse is the public view of a player profile.
type playerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PassportCode string `json:"passportCode"`
	Status       string `json:"status"`
}

func toPlayerResponse(p player.Player) playerResponse {
	return playerResponse{
		ID:           p.ID,
		Name:         p.Name,
		PassportCode: p.PassportCode,
		Status:       p.Status,
	}
}

// handleListPlayers handles GET /api/players. Coach and admin only.
func handleListPlayers(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}
	if !middleware.IsCoachOrAdmin(r.Context()) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	filter := playerStore.ListFilter{
		Limit:  queryInt(r, "limit", 50, 200),
		Offset: queryInt(r, "offset", 0, 0),
		Status: r.URL.Query().Get("status"),
	}
	players, err := stores.PlayerStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]playerResponse, 0, len(players))
	for _, p := range players {
		out = append(out, toPlayerResponse(p))
	}
	respondJSON(w, http.StatusOK, out)
}

// handleGetPlayer handles GET /api/players/{id}: profile plus current
// standing and derived point totals.
func handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	p, err := stores.PlayerStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "player not found")
		return
	}
	st, err := stores.StandingStore.GetByPlayerID(r.Context(), p.ID)
	if err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"player": toPlayerResponse(p),
		"standing": map[string]any{
			"rankingPoints":  st.RankingPoints,
			"picklePoints":   ranking.PicklePoints(st.RankingPoints),
			"lifetimePoints": ranking.LifetimePoints(st.RankingPoints),
			"tier":           ranking.TierForPoints(st.RankingPoints),
			"nextTierAt":     ranking.NextTierAt(st.RankingPoints),
			"matchesPlayed":  st.MatchesPlayed,
			"wins":           st.Wins,
			"losses":         st.Losses,
		},
	})
}

// handlePassportLookup handles GET /api/passport/{code}. Passport codes
// are shared at the court, so any signed-in user can resolve one.
func handlePassportLookup(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	p, err := stores.PlayerStore.GetByPassportCode(r.Context(), r.PathValue("code"))
	if err != nil {
		respondError(w, http.StatusNotFound, "no player with that passport code")
		return
	}
	respondJSON(w, http.StatusOK, toPlayerResponse(p))
}
