package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/email"
	web "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/perf"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	accountStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/account"
	coachappStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/coachapp"
	goalStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/goal"
	matchStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/match"
	outboxStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/outbox"
	playerStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/player"
	standingStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/standing"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"

	"github.com/google/uuid"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real deployments use the
	// process environment.
	_ = godotenv.Load()

	dbPath := envOrDefault("PICKLE_DB", "pickleplus.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Query instrumentation feeds the admin perf endpoint.
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		PlayerStore:   playerStore.NewSQLiteStore(timedDB),
		CoachAppStore: coachappStore.NewSQLiteStore(timedDB),
		MatchStore:    matchStore.NewSQLiteStore(timedDB),
		GoalStore:     goalStore.NewSQLiteStore(timedDB),
		StandingStore: standingStore.NewSQLiteStore(timedDB),
		OutboxStore:   outboxStore.NewSQLiteStore(timedDB),
	}

	// Bootstrap admin. Skipped unless both credentials are configured.
	seedInput := orchestrators.SeedAdminInput{
		Email:    os.Getenv("PICKLE_ADMIN_EMAIL"),
		Password: os.Getenv("PICKLE_ADMIN_PASSWORD"),
	}
	seedDeps := orchestrators.SeedAdminDeps{
		AccountStore: acctStore,
		GenerateID:   func() string { return uuid.New().String() },
		Now:          time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Outbound email: Resend when a key is configured, otherwise noop.
	var sender emailPkg.Sender
	if resendKey := os.Getenv("PICKLE_RESEND_KEY"); resendKey != "" {
		from := envOrDefault("PICKLE_RESEND_FROM", "Pickle+ <noreply@pickleplus.app>")
		sender = emailPkg.NewResendSender(resendKey, from)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("PICKLE_ENV") == "production" {
			log.Println("WARNING: PICKLE_RESEND_KEY is not set; email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set PICKLE_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender)

	// Background delivery of queued notifications.
	stopWorker := orchestrators.StartOutboxRetryScheduler(context.Background(), orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: sender,
		Now:         time.Now,
	}, orchestrators.DefaultOutboxRetryConfig())
	defer stopWorker()

	mux := web.NewMux(stores, collector)

	addr := envOrDefault("PICKLE_ADDR", ":8080")
	log.Printf("Pickle+ %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("PICKLE_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
