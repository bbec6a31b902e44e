package match

import (
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// Wizard field keys for the match recording flow.
const (
	FieldFormat    = "format"
	FieldSideA     = "sideA"
	FieldSideB     = "sideB"
	FieldGames     = "games"
	FieldLocation  = "location"
	FieldPlayedAt  = "playedAt" // YYYY-MM-DD
	FieldConfirmed = "confirmed"
)

// Steps returns the three-step match recording wizard definition.
func Steps() []wizard.StepDefinition {
	return []wizard.StepDefinition{
		{
			Name: "players",
			Valid: wizard.All(
				wizard.NonEmpty(FieldFormat),
				playersMatchFormat,
			),
		},
		{
			Name:  "scores",
			Valid: gamesAreFinished,
		},
		{
			Name:  "review",
			Valid: wizard.AllTrue(FieldConfirmed),
		},
	}
}

// playersMatchFormat checks side sizes against the chosen format and
// that no player appears twice.
func playersMatchFormat(f wizard.Fields) bool {
	perSide := 0
	switch wizard.StringField(f, FieldFormat) {
	case FormatSingles:
		perSide = 1
	case FormatDoubles:
		perSide = 2
	default:
		return false
	}
	a := wizard.ListField(f, FieldSideA)
	b := wizard.ListField(f, FieldSideB)
	if len(a) != perSide || len(b) != perSide {
		return false
	}
	seen := make(map[string]bool)
	for _, id := range append(append([]string{}, a...), b...) {
		if id == "" || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// gamesAreFinished checks every entered game score has a winner and one
// side leads in games.
func gamesAreFinished(f wizard.Fields) bool {
	games := gameScores(f)
	if len(games) == 0 || len(games) > MaxGames {
		return false
	}
	var a, b int
	for _, g := range games {
		switch g.Winner() {
		case SideA:
			a++
		case SideB:
			b++
		default:
			return false
		}
	}
	return a != b
}

// gameScores decodes the games field: a list of {a, b} score pairs as
// posted by the client ([]any of map[string]any after JSON decoding).
func gameScores(f wizard.Fields) []GameScore {
	raw, ok := f[FieldGames].([]any)
	if !ok {
		if typed, ok := f[FieldGames].([]GameScore); ok {
			return typed
		}
		return nil
	}
	out := make([]GameScore, 0, len(raw))
	for _, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			return nil
		}
		a, _ := m["a"].(float64)
		b, _ := m["b"].(float64)
		out = append(out, GameScore{SideA: int(a), SideB: int(b)})
	}
	return out
}

// FromFields maps a completed wizard snapshot onto a Match. Identity and
// CreatedAt are the caller's responsibility; an unparseable playedAt
// falls back to now.
// POST: Returns a Match carrying every collected field
func FromFields(f wizard.Fields, now time.Time) Match {
	playedAt := now
	if s := wizard.StringField(f, FieldPlayedAt); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			playedAt = t
		}
	}
	return Match{
		Format:   wizard.StringField(f, FieldFormat),
		SideA:    wizard.ListField(f, FieldSideA),
		SideB:    wizard.ListField(f, FieldSideB),
		Games:    gameScores(f),
		Location: wizard.StringField(f, FieldLocation),
		PlayedAt: playedAt,
	}
}
