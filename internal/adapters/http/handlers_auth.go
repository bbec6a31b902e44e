package web

import (
	"errors"
	"net/http"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/middleware"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
)

// handleRegister handles POST /api/register. Creates an account plus a
// player profile and queues the welcome email.
func handleRegister(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
		Email:    input.Email,
		Name:     input.Name,
		Password: input.Password,
	}, orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		PlayerStore:  stores.PlayerStore,
		Outbox:       stores.OutboxStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"accountId":    result.AccountID,
		"playerId":     result.PlayerID,
		"passportCode": result.PassportCode,
	})
}

// handleLogin handles POST /api/login and sets the session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrAccountLocked),
			errors.Is(err, orchestrators.ErrAccountSuspended):
			respondError(w, http.StatusForbidden, err.Error())
		default:
			respondError(w, http.StatusUnauthorized, orchestrators.ErrInvalidCredentials.Error())
		}
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]string{
		"accountId": result.AccountID,
		"email":     result.Email,
		"role":      result.Role,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("pickleplus_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleMe handles GET /api/me: the session's account and player
// profile, if one exists.
func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	resp := map[string]any{
		"accountId": sess.AccountID,
		"email":     sess.Email,
		"role":      sess.Role,
	}
	if p, err := stores.PlayerStore.GetByAccountID(r.Context(), sess.AccountID); err == nil {
		resp["playerId"] = p.ID
		resp["name"] = p.Name
		resp["passportCode"] = p.PassportCode
	}
	respondJSON(w, http.StatusOK, resp)
}
