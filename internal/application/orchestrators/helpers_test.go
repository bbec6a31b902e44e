package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/account"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/goal"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/match"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/outbox"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/ranking"
)

// fixedTime is the deterministic clock used across orchestrator tests.
var fixedTime = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// seqID returns a generator producing id-001, id-002, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
}

// mockAccountStore keeps accounts in memory, indexed by ID and email.
type mockAccountStore struct {
	accounts map[string]account.Account
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByID(_ context.Context, id string) (account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return account.Account{}, errors.New("account not found")
	}
	return a, nil
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return account.Account{}, errors.New("account not found")
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

// mockPlayerStore keeps players in memory.
type mockPlayerStore struct {
	players map[string]player.Player
}

func newMockPlayerStore() *mockPlayerStore {
	return &mockPlayerStore{players: make(map[string]player.Player)}
}

func (m *mockPlayerStore) GetByID(_ context.Context, id string) (player.Player, error) {
	p, ok := m.players[id]
	if !ok {
		return player.Player{}, errors.New("player not found")
	}
	return p, nil
}

func (m *mockPlayerStore) GetByPassportCode(_ context.Context, code string) (player.Player, error) {
	for _, p := range m.players {
		if p.PassportCode == code {
			return p, nil
		}
	}
	return player.Player{}, errors.New("player not found")
}

func (m *mockPlayerStore) Save(_ context.Context, p player.Player) error {
	m.players[p.ID] = p
	return nil
}

// mockOutbox records queued entries in order.
type mockOutbox struct {
	entries []outbox.Entry
}

func (m *mockOutbox) Save(_ context.Context, e outbox.Entry) error {
	for i, existing := range m.entries {
		if existing.ID == e.ID {
			m.entries[i] = e
			return nil
		}
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockOutbox) ListPending(_ context.Context, limit int) ([]outbox.Entry, error) {
	var out []outbox.Entry
	for _, e := range m.entries {
		if e.Status == outbox.StatusPending || e.Status == outbox.StatusRetrying {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// mockApplicationStore keeps coach applications in memory.
type mockApplicationStore struct {
	apps map[string]coachapp.Application
}

func newMockApplicationStore() *mockApplicationStore {
	return &mockApplicationStore{apps: make(map[string]coachapp.Application)}
}

func (m *mockApplicationStore) GetByID(_ context.Context, id string) (coachapp.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return coachapp.Application{}, errors.New("application not found")
	}
	return a, nil
}

func (m *mockApplicationStore) GetPendingByAccountID(_ context.Context, accountID string) (coachapp.Application, error) {
	for _, a := range m.apps {
		if a.AccountID == accountID && !a.IsDecided() {
			return a, nil
		}
	}
	return coachapp.Application{}, errors.New("no open application")
}

func (m *mockApplicationStore) Save(_ context.Context, a coachapp.Application) error {
	m.apps[a.ID] = a
	return nil
}

// mockMatchStore keeps matches in memory.
type mockMatchStore struct {
	matches map[string]match.Match
}

func newMockMatchStore() *mockMatchStore {
	return &mockMatchStore{matches: make(map[string]match.Match)}
}

func (m *mockMatchStore) Save(_ context.Context, mt match.Match) error {
	m.matches[mt.ID] = mt
	return nil
}

// mockStandingStore keeps standings in memory, returning a zero-valued
// standing for unknown players like the SQLite store does.
type mockStandingStore struct {
	standings map[string]ranking.Standing
}

func newMockStandingStore() *mockStandingStore {
	return &mockStandingStore{standings: make(map[string]ranking.Standing)}
}

func (m *mockStandingStore) GetByPlayerID(_ context.Context, playerID string) (ranking.Standing, error) {
	s, ok := m.standings[playerID]
	if !ok {
		return ranking.Standing{PlayerID: playerID}, nil
	}
	return s, nil
}

func (m *mockStandingStore) Save(_ context.Context, s ranking.Standing) error {
	m.standings[s.PlayerID] = s
	return nil
}

// mockGoalStore keeps goals in memory.
type mockGoalStore struct {
	goals map[string]goal.Goal
}

func newMockGoalStore() *mockGoalStore {
	return &mockGoalStore{goals: make(map[string]goal.Goal)}
}

func (m *mockGoalStore) GetByID(_ context.Context, id string) (goal.Goal, error) {
	g, ok := m.goals[id]
	if !ok {
		return goal.Goal{}, errors.New("goal not found")
	}
	return g, nil
}

func (m *mockGoalStore) Save(_ context.Context, g goal.Goal) error {
	m.goals[g.ID] = g
	return nil
}

// activePlayer registers an active player in the store.
func (m *mockPlayerStore) addActive(id, name string) {
	m.players[id] = player.Player{
		ID: id, Name: name, Email: name + "@example.com",
		PassportCode: "ABCD2345", Status: player.StatusActive,
	}
}
