package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/account"
)

// SeedAdminInput carries the bootstrap admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForRegistration
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin creates the bootstrap admin account if it does not
// exist. Safe to run on every startup.
// PRE: Email and password come from deployment configuration
// POST: An active admin account exists for the email
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		slog.Info("seed_admin_skipped", "reason", "no_credentials_configured")
		return nil
	}
	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return nil
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		Status:    account.StatusActive,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("seed_admin_created", "account_id", acct.ID, "email", acct.Email)
	return nil
}
