package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/match"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// MatchStoreForRecording defines the match store interface needed by
// recording.
type MatchStoreForRecording interface {
	Save(ctx context.Context, m match.Match) error
}

// PlayerLookup resolves player IDs during match recording.
type PlayerLookup interface {
	GetByID(ctx context.Context, id string) (player.Player, error)
}

// StandingStore defines the standing store interface needed by
// recording.
type StandingStore interface {
	GetByPlayerID(ctx context.Context, playerID string) (ranking.Standing, error)
	Save(ctx context.Context, s ranking.Standing) error
}

// RecordMatchInput carries the submitted wizard snapshot and the
// recorder's identity.
type RecordMatchInput struct {
	RecordedBy string // account ID
	Fields     wizard.Fields
}

// RecordMatchResult carries the persisted match and the points each
// player earned.
type RecordMatchResult struct {
	Match         match.Match
	PointsAwarded map[string]int // player ID -> ranking points earned
}

// RecordMatchDeps holds dependencies for RecordMatch.
type RecordMatchDeps struct {
	MatchStore    MatchStoreForRecording
	PlayerStore   PlayerLookup
	StandingStore StandingStore
	GenerateID    func() string
	Now           func() time.Time
}

// ErrUnknownPlayer is returned when a side references a player ID that
// does not exist or is not active.
var ErrUnknownPlayer = errors.New("match references an unknown or inactive player")

// ExecuteRecordMatch turns a completed match wizard into a persisted
// Match and awards ranking points: winners earn 3, losers earn 1. The
// points rules live in the ranking package; nothing here re-derives
// them.
// PRE: RecordedBy is non-empty; the wizard's review gate held
// POST: Match persisted; every participant's standing updated
func ExecuteRecordMatch(ctx context.Context, input RecordMatchInput, deps RecordMatchDeps) (RecordMatchResult, error) {
	if input.RecordedBy == "" {
		return RecordMatchResult{}, errors.New("recorder account ID is required")
	}

	now := deps.Now()
	m := match.FromFields(input.Fields, now)
	m.ID = deps.GenerateID()
	m.RecordedBy = input.RecordedBy
	m.CreatedAt = now

	if err := m.Validate(); err != nil {
		return RecordMatchResult{}, err
	}

	for _, id := range m.Players() {
		p, err := deps.PlayerStore.GetByID(ctx, id)
		if err != nil || !p.IsActive() {
			return RecordMatchResult{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
		}
	}

	if err := deps.MatchStore.Save(ctx, m); err != nil {
		return RecordMatchResult{}, err
	}

	awarded := make(map[string]int, len(m.Players()))
	winners := make(map[string]bool, 2)
	for _, id := range m.Winners() {
		winners[id] = true
	}
	for _, id := range m.Players() {
		s, err := deps.StandingStore.GetByPlayerID(ctx, id)
		if err != nil {
			return RecordMatchResult{Match: m}, err
		}
		before := s.RankingPoints
		s.ApplyResult(winners[id], now)
		if err := deps.StandingStore.Save(ctx, s); err != nil {
			return RecordMatchResult{Match: m}, err
		}
		awarded[id] = s.RankingPoints - before
	}

	slog.Info("match_event", "event", "match_recorded",
		"match_id", m.ID, "format", m.Format, "winning_side", m.WinningSide(), "recorded_by", input.RecordedBy)
	return RecordMatchResult{Match: m, PointsAwarded: awarded}, nil
}
