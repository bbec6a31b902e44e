package web

import (
	"net/http"
	"time"

	accountStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/account"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
)

// handleAdminOutbox handles GET /api/admin/outbox: per-status counts
// plus the pending and exhausted queues.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	ctx := r.Context()

	counts, err := stores.OutboxStore.CountByStatus(ctx)
	if err != nil {
		internalError(w, err)
		return
	}
	pending, err := stores.OutboxStore.ListPending(ctx, 100)
	if err != nil {
		internalError(w, err)
		return
	}
	failed, err := stores.OutboxStore.ListFailed(ctx, 100)
	if err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"counts":  counts,
		"pending": pending,
		"failed":  failed,
	})
}

// handleAdminOutboxRun handles POST /api/admin/outbox/run: one
// immediate delivery pass, without waiting for the scheduler tick.
func handleAdminOutboxRun(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	err := orchestrators.ExecuteOutboxRetry(r.Context(), orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: emailSender,
		Now:         timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminOutboxAbandon handles POST /api/admin/outbox/{id}/abandon:
// gives up on an entry so it stops appearing in the failed queue.
func handleAdminOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	entry, err := stores.OutboxStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "outbox entry not found")
		return
	}
	entry.MarkAbandoned()
	if err := stores.OutboxStore.Save(r.Context(), entry); err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

// handleAdminOutboxDelete handles DELETE /api/admin/outbox/{id}. Only
// terminal entries may be deleted; live ones belong to the worker.
func handleAdminOutboxDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	entry, err := stores.OutboxStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "outbox entry not found")
		return
	}
	if !entry.IsTerminal() {
		respondError(w, http.StatusConflict, "entry is still being delivered")
		return
	}
	if err := stores.OutboxStore.Delete(r.Context(), entry.ID); err != nil {
		internalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminPerf handles GET /api/admin/perf?minutes=N: request and
// query latency percentiles over the window.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if perfCollector == nil {
		respondError(w, http.StatusServiceUnavailable, "perf collection is disabled")
		return
	}

	minutes := queryInt(r, "minutes", 15, 24*60)
	since := timeNow().Add(-time.Duration(minutes) * time.Minute)
	respondJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}

// handleAdminAccounts handles GET /api/admin/accounts. Password hashes
// never leave the storage layer's callers.
func handleAdminAccounts(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	accounts, err := stores.AccountStore.List(r.Context(), accountStore.ListFilter{
		Limit:  queryInt(r, "limit", 100, 500),
		Offset: queryInt(r, "offset", 0, 0),
		Role:   r.URL.Query().Get("role"),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	type safeAccount struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		Status string `json:"status"`
	}
	out := make([]safeAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, safeAccount{ID: a.ID, Email: a.Email, Role: a.Role, Status: a.Status})
	}
	respondJSON(w, http.StatusOK, out)
}
