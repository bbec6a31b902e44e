// Package projections builds read models for display pages. Projections
// never mutate state; they join stores into the shapes handlers render.
package projections

import (
	"context"
	"log/slog"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
)

// StandingSource is the standing store surface the leaderboard needs.
type StandingSource interface {
	ListTop(ctx context.Context, limit, offset int) ([]ranking.Standing, error)
	Count(ctx context.Context) (int, error)
}

// PlayerSource resolves player profiles for leaderboard rows.
type PlayerSource interface {
	GetByID(ctx context.Context, id string) (player.Player, error)
}

// LeaderboardRow is one ranked entry ready for display. All derived
// numbers are computed server-side from the ranking package so every
// surface shows the same totals.
type LeaderboardRow struct {
	Rank          int    `json:"rank"`
	PlayerID      string `json:"playerId"`
	Name          string `json:"name"`
	PassportCode  string `json:"passportCode"`
	RankingPoints int    `json:"rankingPoints"`
	PicklePoints  int    `json:"picklePoints"`
	LifetimePts   int    `json:"lifetimePoints"`
	Tier          string `json:"tier"`
	NextTierAt    int    `json:"nextTierAt"`
	MatchesPlayed int    `json:"matchesPlayed"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
}

// Leaderboard is a page of ranked rows.
type Leaderboard struct {
	Rows         []LeaderboardRow `json:"rows"`
	TotalPlayers int              `json:"totalPlayers"`
	Offset       int              `json:"offset"`
}

// BuildLeaderboard assembles one leaderboard page. Rank is positional:
// offset 20 starts at rank 21. Archived players keep their row; their
// name is masked instead of dropped so ranks stay stable.
// PRE: limit > 0, offset >= 0
// POST: Rows are in standing order with derived points filled in
func BuildLeaderboard(ctx context.Context, limit, offset int, standings StandingSource, players PlayerSource) (Leaderboard, error) {
	top, err := standings.ListTop(ctx, limit, offset)
	if err != nil {
		return Leaderboard{}, err
	}
	total, err := standings.Count(ctx)
	if err != nil {
		return Leaderboard{}, err
	}

	rows := make([]LeaderboardRow, 0, len(top))
	for i, s := range top {
		name, code := "(unavailable)", ""
		p, err := players.GetByID(ctx, s.PlayerID)
		switch {
		case err != nil:
			slog.Warn("leaderboard_player_lookup_failed", "player_id", s.PlayerID, "error", err)
		case p.Status == player.StatusArchived:
			name = "(retired player)"
		default:
			name, code = p.Name, p.PassportCode
		}

		rows = append(rows, LeaderboardRow{
			Rank:          offset + i + 1,
			PlayerID:      s.PlayerID,
			Name:          name,
			PassportCode:  code,
			RankingPoints: s.RankingPoints,
			PicklePoints:  s.PicklePoints(),
			LifetimePts:   ranking.LifetimePoints(s.RankingPoints),
			Tier:          s.Tier(),
			NextTierAt:    ranking.NextTierAt(s.RankingPoints),
			MatchesPlayed: s.MatchesPlayed,
			Wins:          s.Wins,
			Losses:        s.Losses,
		})
	}

	return Leaderboard{Rows: rows, TotalPlayers: total, Offset: offset}, nil
}
