package orchestrators

import (
	"context"
	"errors"
	"testing"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/match"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// recordedDoublesFields is a complete match wizard snapshot: side A wins
// two games to one.
func recordedDoublesFields() wizard.Fields {
	return wizard.Fields{
		"format":   "doubles",
		"sideA":    []any{"p1", "p2"},
		"sideB":    []any{"p3", "p4"},
		"games":    []any{
			map[string]any{"a": float64(11), "b": float64(9)},
			map[string]any{"a": float64(8), "b": float64(11)},
			map[string]any{"a": float64(11), "b": float64(6)},
		},
		"location":  "Mission Bay courts",
		"playedAt":  "2026-06-14",
		"confirmed": true,
	}
}

func recordMatchFixture() (RecordMatchDeps, *mockMatchStore, *mockStandingStore) {
	players := newMockPlayerStore()
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		players.addActive(id, "player-"+id)
	}
	matches := newMockMatchStore()
	standings := newMockStandingStore()
	return RecordMatchDeps{
		MatchStore:    matches,
		PlayerStore:   players,
		StandingStore: standings,
		GenerateID:    seqID(),
		Now:           fixedNow,
	}, matches, standings
}

func TestExecuteRecordMatch_AwardsPoints(t *testing.T) {
	deps, matches, standings := recordMatchFixture()

	res, err := ExecuteRecordMatch(context.Background(), RecordMatchInput{
		RecordedBy: "acct-1",
		Fields:     recordedDoublesFields(),
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches.matches) != 1 {
		t.Fatalf("expected 1 persisted match, got %d", len(matches.matches))
	}
	if res.Match.WinningSide() != match.SideA {
		t.Errorf("WinningSide = %s, want a", res.Match.WinningSide())
	}

	for _, id := range []string{"p1", "p2"} {
		if res.PointsAwarded[id] != ranking.WinPoints {
			t.Errorf("winner %s awarded %d, want %d", id, res.PointsAwarded[id], ranking.WinPoints)
		}
		s := standings.standings[id]
		if s.Wins != 1 || s.RankingPoints != ranking.WinPoints {
			t.Errorf("winner standing %s = %+v", id, s)
		}
	}
	for _, id := range []string{"p3", "p4"} {
		if res.PointsAwarded[id] != ranking.LossPoints {
			t.Errorf("loser %s awarded %d, want %d", id, res.PointsAwarded[id], ranking.LossPoints)
		}
		s := standings.standings[id]
		if s.Losses != 1 || s.RankingPoints != ranking.LossPoints {
			t.Errorf("loser standing %s = %+v", id, s)
		}
	}
}

func TestExecuteRecordMatch_AccumulatesStandings(t *testing.T) {
	deps, _, standings := recordMatchFixture()

	for i := 0; i < 3; i++ {
		if _, err := ExecuteRecordMatch(context.Background(), RecordMatchInput{
			RecordedBy: "acct-1",
			Fields:     recordedDoublesFields(),
		}, deps); err != nil {
			t.Fatalf("match %d failed: %v", i, err)
		}
	}

	s := standings.standings["p1"]
	if s.MatchesPlayed != 3 || s.RankingPoints != 3*ranking.WinPoints {
		t.Errorf("standing after 3 wins = %+v", s)
	}
}

func TestExecuteRecordMatch_UnknownPlayer(t *testing.T) {
	deps, matches, _ := recordMatchFixture()

	fields := recordedDoublesFields()
	fields["sideB"] = []any{"p3", "ghost"}

	_, err := ExecuteRecordMatch(context.Background(), RecordMatchInput{
		RecordedBy: "acct-1",
		Fields:     fields,
	}, deps)
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
	if len(matches.matches) != 0 {
		t.Error("expected no match persisted for unknown player")
	}
}

func TestExecuteRecordMatch_UnfinishedGameRejected(t *testing.T) {
	deps, _, _ := recordMatchFixture()

	fields := recordedDoublesFields()
	fields["games"] = []any{map[string]any{"a": float64(11), "b": float64(10)}}

	_, err := ExecuteRecordMatch(context.Background(), RecordMatchInput{
		RecordedBy: "acct-1",
		Fields:     fields,
	}, deps)
	if !errors.Is(err, match.ErrBadGameScore) {
		t.Errorf("expected ErrBadGameScore, got %v", err)
	}
}
