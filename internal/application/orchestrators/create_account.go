package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	emailAdapter "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/email"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/account"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
)

// AccountStoreForRegistration defines the store interface needed by
// account creation.
type AccountStoreForRegistration interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// PlayerStoreForRegistration defines the player store interface needed
// by account creation.
type PlayerStoreForRegistration interface {
	Save(ctx context.Context, p player.Player) error
	GetByPassportCode(ctx context.Context, code string) (player.Player, error)
}

// CreateAccountInput carries input for the registration orchestrator.
type CreateAccountInput struct {
	Email    string
	Name     string
	Password string
}

// CreateAccountResult carries the created identities.
type CreateAccountResult struct {
	AccountID    string
	PlayerID     string
	PassportCode string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForRegistration
	PlayerStore  PlayerStoreForRegistration
	Outbox       OutboxEnqueuer
	GenerateID   func() string
	Now          func() time.Time
}

// ErrEmailTaken is returned when the registration email already has an
// account.
var ErrEmailTaken = errors.New("an account with this email already exists")

// ExecuteCreateAccount registers a player account: the credential
// record, the player profile with a fresh passport code, and a welcome
// email. The email goes through the outbox so registration never fails
// on a provider outage.
// PRE: Valid email, non-empty name, password >= 12 characters
// POST: Account (role player) and Player persisted; welcome email queued
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (CreateAccountResult, error) {
	if input.Name == "" {
		return CreateAccountResult{}, errors.New("name cannot be empty")
	}
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return CreateAccountResult{}, ErrEmailTaken
	}

	now := deps.Now()
	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      account.RolePlayer,
		Status:    account.StatusActive,
		CreatedAt: now,
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return CreateAccountResult{}, err
	}
	if err := acct.Validate(); err != nil {
		return CreateAccountResult{}, err
	}

	code, err := newUniquePassportCode(ctx, deps.PlayerStore)
	if err != nil {
		return CreateAccountResult{}, err
	}
	p := player.Player{
		ID:           deps.GenerateID(),
		AccountID:    acct.ID,
		Name:         input.Name,
		Email:        input.Email,
		PassportCode: code,
		Status:       player.StatusActive,
	}
	if err := p.Validate(); err != nil {
		return CreateAccountResult{}, err
	}

	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return CreateAccountResult{}, err
	}
	if err := deps.PlayerStore.Save(ctx, p); err != nil {
		return CreateAccountResult{}, err
	}

	enqueueEmail(ctx, deps.Outbox, deps.GenerateID(), now,
		emailAdapter.WelcomeEmail(input.Email, input.Name, code))

	slog.Info("account_event", "event", "account_created", "account_id", acct.ID, "player_id", p.ID)
	return CreateAccountResult{AccountID: acct.ID, PlayerID: p.ID, PassportCode: code}, nil
}

// newUniquePassportCode generates a passport code, retrying on the
// unlikely collision with an existing player.
func newUniquePassportCode(ctx context.Context, store PlayerStoreForRegistration) (string, error) {
	for i := 0; i < 5; i++ {
		code, err := player.NewPassportCode()
		if err != nil {
			return "", err
		}
		if _, err := store.GetByPassportCode(ctx, code); err != nil {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique passport code")
}
