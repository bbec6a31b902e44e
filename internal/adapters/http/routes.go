package web

import "net/http"

// registerRoutes binds every API route. Method and path parameters are
// matched by the standard mux; auth is enforced inside handlers so the
// error shape stays uniform.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)

	// Accounts and sessions
	mux.HandleFunc("POST /api/register", handleRegister)
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.HandleFunc("GET /api/me", handleMe)

	// Wizards: step-by-step flows for coach applications, match
	// recording, and goals
	mux.HandleFunc("POST /api/wizards/{kind}", handleWizardCreate)
	mux.HandleFunc("GET /api/wizards/{id}", handleWizardState)
	mux.HandleFunc("POST /api/wizards/{id}/fields", handleWizardFields)
	mux.HandleFunc("POST /api/wizards/{id}/next", handleWizardNext)
	mux.HandleFunc("POST /api/wizards/{id}/previous", handleWizardPrevious)
	mux.HandleFunc("POST /api/wizards/{id}/submit", handleWizardSubmit)

	// Players
	mux.HandleFunc("GET /api/players", handleListPlayers)
	mux.HandleFunc("GET /api/players/{id}", handleGetPlayer)
	mux.HandleFunc("GET /api/players/{id}/matches", handlePlayerMatches)
	mux.HandleFunc("GET /api/passport/{code}", handlePassportLookup)

	// Matches and rankings
	mux.HandleFunc("POST /api/matches", handleRecordMatch)
	mux.HandleFunc("GET /api/matches", handleListMatches)
	mux.HandleFunc("GET /api/matches/{id}", handleGetMatch)
	mux.HandleFunc("GET /api/leaderboard", handleLeaderboard)

	// Goals
	mux.HandleFunc("GET /api/goals", handleListGoals)
	mux.HandleFunc("POST /api/goals/{id}/progress", handleGoalProgress)
	mux.HandleFunc("DELETE /api/goals/{id}", handleDeleteGoal)

	// Coaching
	mux.HandleFunc("GET /api/coaches", handleCoachDirectory)
	mux.HandleFunc("GET /api/admin/coach-applications", handleAdminListApplications)
	mux.HandleFunc("GET /api/admin/coach-applications/{id}", handleAdminGetApplication)
	mux.HandleFunc("POST /api/admin/coach-applications/{id}/review", handleAdminStartReview)
	mux.HandleFunc("POST /api/admin/coach-applications/{id}/decision", handleAdminDecideApplication)

	// Admin operations
	mux.HandleFunc("GET /api/admin/outbox", handleAdminOutbox)
	mux.HandleFunc("POST /api/admin/outbox/run", handleAdminOutboxRun)
	mux.HandleFunc("POST /api/admin/outbox/{id}/abandon", handleAdminOutboxAbandon)
	mux.HandleFunc("DELETE /api/admin/outbox/{id}", handleAdminOutboxDelete)
	mux.HandleFunc("GET /api/admin/perf", handleAdminPerf)
	mux.HandleFunc("GET /api/admin/accounts", handleAdminAccounts)
}
