package web

import (
	"errors"
	"net/http"

	coachappStore "github.com/mightymaxworks/pickleplus-sub011/internal/adapters/storage/coachapp"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
)

// coachProfile is one approved coach in the public directory. The bio
// is rendered from markdown server-side so every client shows the same
// HTML.
type coachProfile struct {
	Name            string   `json:"name"`
	BioHTML         string   `json:"bioHtml"`
	YearsExperience int      `json:"yearsExperience"`
	Specializations []string `json:"specializations"`
	Certifications  []string `json:"certifications"`
	IndividualRate  int      `json:"individualRate"`
	GroupRate       int      `json:"groupRate"`
}

// handleCoachDirectory handles GET /api/coaches: approved coaches,
// visible to any signed-in user.
func handleCoachDirectory(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireSession(w, r); !ok {
		return
	}

	apps, err := stores.CoachAppStore.List(r.Context(), coachappStore.ListFilter{
		Limit:  queryInt(r, "limit", 50, 200),
		Offset: queryInt(r, "offset", 0, 0),
		Status: coachapp.StatusApproved,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]coachProfile, 0, len(apps))
	for _, app := range apps {
		out = append(out, coachProfile{
			Name:            app.Name,
			BioHTML:         renderMarkdown(app.Bio),
			YearsExperience: app.YearsExperience,
			Specializations: app.Specializations,
			Certifications:  app.Certifications,
			IndividualRate:  app.IndividualRate,
			GroupRate:       app.GroupRate,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// handleAdminListApplications handles GET /api/admin/coach-applications
// with an optional status filter, plus per-status counts for the queue
// header.
func handleAdminListApplications(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	apps, err := stores.CoachAppStore.List(r.Context(), coachappStore.ListFilter{
		Limit:  queryInt(r, "limit", 50, 200),
		Offset: queryInt(r, "offset", 0, 0),
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		internalError(w, err)
		return
	}
	counts, err := stores.CoachAppStore.CountByStatus(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"applications": apps,
		"counts":       counts,
	})
}

// handleAdminGetApplication handles GET /api/admin/coach-applications/{id}.
// Includes the rendered bio for the review page.
func handleAdminGetApplication(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	app, err := stores.CoachAppStore.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "application not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"application": app,
		"bioHtml":     renderMarkdown(app.Bio),
	})
}

// handleAdminStartReview handles POST /api/admin/coach-applications/{id}/review:
// claims a pending application so other admins see it is being handled.
func handleAdminStartReview(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	app, err := orchestrators.ExecuteStartCoachApplicationReview(r.Context(), orchestrators.StartCoachApplicationReviewInput{
		ApplicationID: r.PathValue("id"),
		ReviewerID:    sess.AccountID,
	}, reviewDeps())
	if err != nil {
		if errors.Is(err, coachapp.ErrAlreadyDecided) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, app)
}

// handleAdminDecideApplication handles POST /api/admin/coach-applications/{id}/decision.
// Approval promotes the applicant's account to coach; rejection
// requires a reason. Either way the applicant is notified by email.
func handleAdminDecideApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var input struct {
		Decision string `json:"decision"`
		Reason   string `json:"reason"`
	}
	if err := strictDecode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	app, err := orchestrators.ExecuteReviewCoachApplication(r.Context(), orchestrators.ReviewCoachApplicationInput{
		ApplicationID: r.PathValue("id"),
		ReviewerID:    sess.AccountID,
		Decision:      input.Decision,
		RejectReason:  input.Reason,
	}, reviewDeps())
	if err != nil {
		switch {
		case errors.Is(err, coachapp.ErrAlreadyDecided):
			respondError(w, http.StatusConflict, err.Error())
		case errors.Is(err, orchestrators.ErrUnknownDecision),
			errors.Is(err, coachapp.ErrEmptyRejectReason):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			internalError(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, app)
}

func reviewDeps() orchestrators.ReviewCoachApplicationDeps {
	return orchestrators.ReviewCoachApplicationDeps{
		ApplicationStore: stores.CoachAppStore,
		AccountStore:     stores.AccountStore,
		Outbox:           stores.OutboxStore,
		GenerateID:       generateID,
		Now:              timeNow,
	}
}
