package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/mightymaxworks/pickleplus-sub011/internal/adapters/http/middleware"
	"github.com/mightymaxworks/pickleplus-sub011/internal/application/orchestrators"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// wizardStateResponse is the client view of one wizard instance.
type wizardStateResponse struct {
	ID         string        `json:"id"`
	Kind       string        `json:"kind"`
	StepIndex  int           `json:"stepIndex"`
	StepCount  int           `json:"stepCount"`
	StepName   string        `json:"stepName"`
	StepNames  []string      `json:"stepNames"`
	IsFirst    bool          `json:"isFirst"`
	IsLast     bool          `json:"isLast"`
	CanAdvance bool          `json:"canAdvance"`
	Status     string        `json:"status"`
	LastError  string        `json:"lastError,omitempty"`
	Fields     wizard.Fields `json:"fields"`
	Result     any           `json:"result,omitempty"`
}

func wizardState(inst *wizardInstance) wizardStateResponse {
	names := make([]string, 0, inst.Wizard.StepCount())
	for _, s := range wizardSteps(inst.Kind) {
		names = append(names, s.Name)
	}
	return wizardStateResponse{
		ID:         inst.ID,
		Kind:       inst.Kind,
		StepIndex:  inst.Wizard.StepIndex(),
		StepCount:  inst.Wizard.StepCount(),
		StepName:   inst.Wizard.StepName(),
		StepNames:  names,
		IsFirst:    inst.Wizard.IsFirst(),
		IsLast:     inst.Wizard.IsLast(),
		CanAdvance: inst.Wizard.CanAdvance(),
		Status:     string(inst.Wizard.Status()),
		LastError:  inst.Wizard.LastError(),
		Fields:     inst.Wizard.Snapshot(),
		Result:     inst.getResult(),
	}
}

// handleWizardCreate handles POST /api/wizards/{kind}.
func handleWizardCreate(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	kind := r.PathValue("kind")
	if wizardSteps(kind) == nil {
		respondError(w, http.StatusBadRequest, "unknown wizard kind: "+kind)
		return
	}

	inst, err := wizards.Create(generateID(), kind, sess.AccountID, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wizardState(inst))
}

// loadWizard resolves {id} to an instance owned by the session, writing
// the error response on failure.
func loadWizard(w http.ResponseWriter, r *http.Request) (*wizardInstance, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return nil, false
	}
	inst, ok := wizards.Get(r.PathValue("id"), sess.AccountID)
	if !ok {
		respondError(w, http.StatusNotFound, "wizard not found")
		return nil, false
	}
	return inst, true
}

// handleWizardState handles GET /api/wizards/{id}.
func handleWizardState(w http.ResponseWriter, r *http.Request) {
	inst, ok := loadWizard(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, wizardState(inst))
}

// handleWizardFields handles POST /api/wizards/{id}/fields. The body is
// a partial field map merged into the accumulated fields.
func handleWizardFields(w http.ResponseWriter, r *http.Request) {
	inst, ok := loadWizard(w, r)
	if !ok {
		return
	}
	var partial wizard.Fields
	if err := strictDecode(r, &partial); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	inst.Wizard.Update(partial)
	respondJSON(w, http.StatusOK, wizardState(inst))
}

// handleWizardNext handles POST /api/wizards/{id}/next. The index only
// moves when the current step's gate holds; a blocked advance is not an
// error, the response simply shows the unchanged step.
func handleWizardNext(w http.ResponseWriter, r *http.Request) {
	inst, ok := loadWizard(w, r)
	if !ok {
		return
	}
	moved := inst.Wizard.Next()
	state := wizardState(inst)
	respondJSON(w, http.StatusOK, map[string]any{"moved": moved, "wizard": state})
}

// handleWizardPrevious handles POST /api/wizards/{id}/previous.
func handleWizardPrevious(w http.ResponseWriter, r *http.Request) {
	inst, ok := loadWizard(w, r)
	if !ok {
		return
	}
	moved := inst.Wizard.Previous()
	state := wizardState(inst)
	respondJSON(w, http.StatusOK, map[string]any{"moved": moved, "wizard": state})
}

// handleWizardSubmit handles POST /api/wizards/{id}/submit. The wizard
// drives the status machine; the submitter persists through the kind's
// orchestrator. A failed submission keeps fields and step for retry.
func handleWizardSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}
	inst, ok := wizards.Get(r.PathValue("id"), sess.AccountID)
	if !ok {
		respondError(w, http.StatusNotFound, "wizard not found")
		return
	}

	submitter, err := wizardSubmitter(w, r, sess, inst)
	if err != nil {
		return // response already written
	}

	err = inst.Wizard.Submit(r.Context(), submitter)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, wizardState(inst))
	case errors.Is(err, wizard.ErrSubmitInFlight),
		errors.Is(err, wizard.ErrAlreadyDone):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, wizard.ErrNotOnFinalStep),
		errors.Is(err, wizard.ErrStepInvalid):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orchestrators.ErrApplicationOpen):
		respondError(w, http.StatusConflict, err.Error())
	default:
		// Submitter failure: wizard is now failed, fields intact.
		respondJSON(w, http.StatusUnprocessableEntity, wizardState(inst))
	}
}

// wizardSubmitter builds the submitter for the instance's kind. On any
// precondition failure it writes the response and returns an error.
func wizardSubmitter(w http.ResponseWriter, r *http.Request, sess middleware.Session, inst *wizardInstance) (wizard.Submitter, error) {
	switch inst.Kind {
	case WizardKindCoachApplication:
		return wizard.SubmitterFunc(func(ctx context.Context, fields wizard.Fields) error {
			app, err := orchestrators.ExecuteSubmitCoachApplication(ctx, orchestrators.SubmitCoachApplicationInput{
				AccountID: inst.OwnerID,
				Fields:    fields,
			}, orchestrators.SubmitCoachApplicationDeps{
				ApplicationStore: stores.CoachAppStore,
				GenerateID:       generateID,
				Now:              timeNow,
			})
			if err != nil {
				return err
			}
			inst.setResult(map[string]string{"applicationId": app.ID, "status": app.Status})
			return nil
		}), nil

	case WizardKindMatch:
		return wizard.SubmitterFunc(func(ctx context.Context, fields wizard.Fields) error {
			result, err := orchestrators.ExecuteRecordMatch(ctx, orchestrators.RecordMatchInput{
				RecordedBy: inst.OwnerID,
				Fields:     fields,
			}, orchestrators.RecordMatchDeps{
				MatchStore:    stores.MatchStore,
				PlayerStore:   stores.PlayerStore,
				StandingStore: stores.StandingStore,
				GenerateID:    generateID,
				Now:           timeNow,
			})
			if err != nil {
				return err
			}
			inst.setResult(map[string]any{
				"matchId":       result.Match.ID,
				"pointsAwarded": result.PointsAwarded,
			})
			return nil
		}), nil

	case WizardKindGoal:
		p, ok := currentPlayer(w, r, sess)
		if !ok {
			return nil, errors.New("no player profile")
		}
		return wizard.SubmitterFunc(func(ctx context.Context, fields wizard.Fields) error {
			g, err := orchestrators.ExecuteCreateGoal(ctx, orchestrators.CreateGoalInput{
				PlayerID: p.ID,
				Fields:   fields,
			}, orchestrators.CreateGoalDeps{
				GoalStore:  stores.GoalStore,
				GenerateID: generateID,
				Now:        timeNow,
			})
			if err != nil {
				return err
			}
			inst.setResult(map[string]string{"goalId": g.ID})
			return nil
		}), nil
	}

	respondError(w, http.StatusBadRequest, "unknown wizard kind: "+inst.Kind)
	return nil, errors.New("unknown wizard kind")
}
