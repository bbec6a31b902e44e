package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/perf"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// TestTiming_RecordsEntry verifies a request entry lands in the
// collector with method, path, and status.
func TestTiming_RecordsEntry(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/matches", nil))

	if collector.TotalRecorded() != 1 {
		t.Fatalf("TotalRecorded = %d, want 1", collector.TotalRecorded())
	}
	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].Path != "POST /api/matches" {
		t.Errorf("SlowestPaths = %+v", snap.SlowestPaths)
	}
}

// TestTiming_SkipsStatic verifies static assets are excluded from
// timing.
func TestTiming_SkipsStatic(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/static/app.css", nil))

	if collector.TotalRecorded() != 0 {
		t.Errorf("TotalRecorded = %d, want 0 (static excluded)", collector.TotalRecorded())
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestTiming_NilCollector verifies the middleware works without a
// collector.
func TestTiming_NilCollector(t *testing.T) {
	handler := Timing(nil)(okHandler())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/leaderboard", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

// TestTiming_HandlerPanic verifies the deferred recording runs even
// when the handler panics, so the pooled writer is always returned.
func TestTiming_HandlerPanic(t *testing.T) {
	collector := perf.NewCollector(10)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic to propagate, got nil")
		}
		if collector.TotalRecorded() != 1 {
			t.Errorf("TotalRecorded = %d, want 1 (defer must run on panic)", collector.TotalRecorded())
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/panic", nil))
}

// TestTiming_PoolNoStatusLeak verifies statusWriter reuse does not leak
// status codes between requests.
func TestTiming_PoolNoStatusLeak(t *testing.T) {
	collector := perf.NewCollector(10)

	fail := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	rr1 := httptest.NewRecorder()
	fail.ServeHTTP(rr1, httptest.NewRequest("GET", "/api/fail", nil))
	if rr1.Code != 500 {
		t.Errorf("first status = %d, want 500", rr1.Code)
	}

	// Second handler writes a body without WriteHeader; a leaked pooled
	// writer would report 500.
	implicit := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	rr2 := httptest.NewRecorder()
	implicit.ServeHTTP(rr2, httptest.NewRequest("GET", "/api/ok", nil))
	if rr2.Code != 200 {
		t.Errorf("second status = %d, want 200", rr2.Code)
	}
}

// BenchmarkTiming measures per-request instrumentation overhead.
func BenchmarkTiming(b *testing.B) {
	collector := perf.NewCollector(perf.DefaultRingSize)
	handler := Timing(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest("GET", "/api/bench", nil)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
	}
}
