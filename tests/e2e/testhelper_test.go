package e2e_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	emailPkg "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/email"
	web "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http"
	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage"
	accountStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/account"
	coachappStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/coachapp"
	goalStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/goal"
	matchStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/match"
	outboxStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/outbox"
	playerStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/player"
	standingStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/standing"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
)

const (
	adminEmail    = "admin@e2e.test"
	adminPassword = "TestPass123!"
)

// testApp holds the running test server and a Playwright API request
// context that carries cookies across calls like a browser session.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Stores  *web.Stores
}

// newTestApp boots the full app against a temp SQLite DB and starts an
// HTTP server on a free port.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "e2e.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.MigrateDB(db, dbPath); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	stores := &web.Stores{
		AccountStore:  accountStore.NewSQLiteStore(db),
		PlayerStore:   playerStore.NewSQLiteStore(db),
		CoachAppStore: coachappStore.NewSQLiteStore(db),
		MatchStore:    matchStore.NewSQLiteStore(db),
		GoalStore:     goalStore.NewSQLiteStore(db),
		StandingStore: standingStore.NewSQLiteStore(db),
		OutboxStore:   outboxStore.NewSQLiteStore(db),
	}

	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    adminEmail,
		Password: adminPassword,
	}, orchestrators.SeedAdminDeps{
		AccountStore: stores.AccountStore,
		GenerateID:   func() string { return uuid.New().String() },
		Now:          time.Now,
	})
	if err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	web.SetEmailSender(emailPkg.NewNoopSender())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: web.NewMux(stores, nil),
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/api/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	return &testApp{BaseURL: baseURL, DB: db, Stores: stores}
}

// newSession starts a Playwright API request context rooted at the test
// server. Cookies set by the server persist across calls.
func (a *testApp) newSession(t *testing.T) playwright.APIRequestContext {
	t.Helper()

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright unavailable: %v", err)
	}
	t.Cleanup(func() { pw.Stop() })

	session, err := pw.Request.NewContext(playwright.APIRequestNewContextOptions{
		BaseURL: playwright.String(a.BaseURL),
	})
	if err != nil {
		t.Fatalf("failed to create request context: %v", err)
	}
	t.Cleanup(func() { session.Dispose() })
	return session
}

// postJSON sends a JSON body and decodes the JSON response into out
// (when out is non-nil). Fails the test on an unexpected status.
func postJSON(t *testing.T, session playwright.APIRequestContext, path string, body any, wantStatus int, out any) {
	t.Helper()
	resp, err := session.Post(path, playwright.APIRequestContextPostOptions{
		Data:    body,
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	decodeResponse(t, "POST", path, resp, wantStatus, out)
}

// getJSON fetches a path and decodes the JSON response into out.
func getJSON(t *testing.T, session playwright.APIRequestContext, path string, wantStatus int, out any) {
	t.Helper()
	resp, err := session.Get(path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	decodeResponse(t, "GET", path, resp, wantStatus, out)
}

func decodeResponse(t *testing.T, method, path string, resp playwright.APIResponse, wantStatus int, out any) {
	t.Helper()
	raw, err := resp.Body()
	if err != nil {
		t.Fatalf("%s %s: failed to read body: %v", method, path, err)
	}
	if resp.Status() != wantStatus {
		t.Fatalf("%s %s: status = %d, want %d (body: %s)", method, path, resp.Status(), wantStatus, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("%s %s: failed to decode body %q: %v", method, path, raw, err)
		}
	}
}

const testPassword = "Sw1ngAndD1nk!"

// registerPlayer registers a fresh player account without signing in,
// returning the player ID and passport code.
func registerPlayer(t *testing.T, session playwright.APIRequestContext, email, name string) (playerID, passportCode string) {
	t.Helper()

	var reg struct {
		PlayerID     string `json:"playerId"`
		PassportCode string `json:"passportCode"`
	}
	postJSON(t, session, "/api/register", map[string]any{
		"email":    email,
		"name":     name,
		"password": testPassword,
	}, http.StatusCreated, &reg)
	return reg.PlayerID, reg.PassportCode
}

// login signs the session in as the given account.
func login(t *testing.T, session playwright.APIRequestContext, email, password string) {
	t.Helper()
	postJSON(t, session, "/api/login", map[string]any{
		"email":    email,
		"password": password,
	}, http.StatusOK, nil)
}

// registerAndLogin registers a fresh player account and signs in.
func registerAndLogin(t *testing.T, session playwright.APIRequestContext, email, name string) (playerID, passportCode string) {
	t.Helper()
	playerID, passportCode = registerPlayer(t, session, email, name)
	login(t, session, email, testPassword)
	return playerID, passportCode
}
