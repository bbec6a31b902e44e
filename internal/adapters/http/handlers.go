package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/middleware"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/player"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer converts coach bios from markdown to HTML. Raw HTML in the
// input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown returns the HTML rendering of md, or the raw text if
// conversion fails.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the
// client so internal details never leak.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// respondJSON writes v as a JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error payload for client errors.
type errorBody struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorBody{Error: msg})
}

// requireSession extracts the session or writes a 401.
// Returns false if the request should not proceed.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin checks the session for admin role.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if !middleware.IsAdmin(r.Context()) {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "admin")
		respondError(w, http.StatusForbidden, "forbidden")
		return middleware.Session{}, false
	}
	return sess, true
}

// currentPlayer resolves the player profile behind the session, writing
// the error response on failure.
func currentPlayer(w http.ResponseWriter, r *http.Request, sess middleware.Session) (player.Player, bool) {
	p, err := stores.PlayerStore.GetByAccountID(r.Context(), sess.AccountID)
	if err != nil {
		respondError(w, http.StatusForbidden, "no player profile for this account")
		return player.Player{}, false
	}
	return p, true
}

// queryInt parses an integer query parameter with a default and cap.
func queryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	if max > 0 && n > max {
		return max
	}
	return n
}

// handleHealth reports liveness for load balancers.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
