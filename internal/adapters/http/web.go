// Package web wires the HTTP surface: routes, middleware, and the
// shared store/session state handlers depend on.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"os"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/email"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/middleware"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/perf"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/account"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/coachapp"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/goal"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/match"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/outbox"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/player"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/standing"
)

const (
	// RateLimitPerSecond is the per-IP request budget.
	RateLimitPerSecond = 20
	// RateLimitBurst allows short spikes above the steady rate.
	RateLimitBurst = 40
)

// Stores bundles every storage dependency handlers reach for.
type Stores struct {
	AccountStore  account.Store
	PlayerStore   player.Store
	CoachAppStore coachapp.Store
	MatchStore    match.Store
	GoalStore     goal.Store
	StandingStore standing.Store
	OutboxStore   outbox.Store
}

var (
	stores        *Stores
	sessions      *middleware.SessionStore
	perfCollector *perf.Collector
	emailSender   email.Sender = &email.NoopSender{}
	wizards       *wizardRegistry
)

// SetEmailSender overrides the outbound email transport. Defaults to
// the no-op sender so tests and local runs never hit a provider.
func SetEmailSender(s email.Sender) {
	emailSender = s
}

// loadCSRFKey returns the CSRF signing key from PICKLE_CSRF_KEY, or a
// random per-process key outside production.
func loadCSRFKey() []byte {
	if v := os.Getenv("PICKLE_CSRF_KEY"); v != "" {
		if key, err := hex.DecodeString(v); err == nil && len(key) == 32 {
			return key
		}
		slog.Warn("PICKLE_CSRF_KEY is not 32 hex-encoded bytes, ignoring")
	}
	if os.Getenv("PICKLE_ENV") == "production" {
		slog.Error("PICKLE_CSRF_KEY must be set in production")
		os.Exit(1)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		slog.Error("generating csrf key", "error", err)
		os.Exit(1)
	}
	return key
}

// NewMux builds the full HTTP handler: all routes plus the middleware
// chain applied outermost-first.
func NewMux(s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	sessions = middleware.NewSessionStore()
	perfCollector = collector
	wizards = newWizardRegistry()

	middleware.SecureCookies = os.Getenv("PICKLE_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)
	registerStatic(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, RateLimitBurst)

	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(loadCSRFKey()),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
