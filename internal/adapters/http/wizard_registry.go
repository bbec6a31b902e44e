package web

import (
	"sync"
	"time"

	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/coachapp"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/goal"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/match"
	"github.com/mightymaxworks/pickleplus-sub011/internal/domain/wizard"
)

// Wizard kinds the API can start. Each maps to a step list from the
// owning domain package.
const (
	WizardKindCoachApplication = "coach-application"
	WizardKindMatch            = "match"
	WizardKindGoal             = "goal"
)

// wizardSteps returns the step definitions for a kind, or nil for an
// unknown kind.
func wizardSteps(kind string) []wizard.StepDefinition {
	switch kind {
	case WizardKindCoachApplication:
		return coachapp.Steps()
	case WizardKindMatch:
		return match.Steps()
	case WizardKindGoal:
		return goal.Steps()
	}
	return nil
}

// wizardInstance is one live wizard owned by an account. result holds
// the submission payload once the wizard succeeds.
type wizardInstance struct {
	ID        string
	Kind      string
	OwnerID   string // account ID
	Wizard    *wizard.Wizard
	CreatedAt time.Time

	mu     sync.Mutex
	result any
}

func (wi *wizardInstance) setResult(v any) {
	wi.mu.Lock()
	defer wi.mu.Unlock()
	wi.result = v
}

func (wi *wizardInstance) getResult() any {
	wi.mu.Lock()
	defer wi.mu.Unlock()
	return wi.result
}

// wizardTTL bounds how long an abandoned wizard is kept in memory.
const wizardTTL = 24 * time.Hour

// wizardRegistry holds live wizard instances in memory. Wizards are
// ephemeral by design: an abandoned draft expires with the session.
type wizardRegistry struct {
	mu   sync.Mutex
	byID map[string]*wizardInstance
}

func newWizardRegistry() *wizardRegistry {
	return &wizardRegistry{byID: make(map[string]*wizardInstance)}
}

// Create starts a new wizard of the given kind for an owner.
// PRE: kind is a known wizard kind
// POST: Instance is registered and returned
func (reg *wizardRegistry) Create(id, kind, ownerID string, now time.Time) (*wizardInstance, error) {
	steps := wizardSteps(kind)
	wz, err := wizard.New(steps)
	if err != nil {
		return nil, err
	}
	inst := &wizardInstance{
		ID:        id,
		Kind:      kind,
		OwnerID:   ownerID,
		Wizard:    wz,
		CreatedAt: now,
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.pruneLocked(now)
	reg.byID[id] = inst
	return inst, nil
}

// Get returns the instance if it exists and belongs to ownerID.
func (reg *wizardRegistry) Get(id, ownerID string) (*wizardInstance, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	inst, ok := reg.byID[id]
	if !ok || inst.OwnerID != ownerID {
		return nil, false
	}
	return inst, true
}

// Delete drops an instance.
func (reg *wizardRegistry) Delete(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.byID, id)
}

func (reg *wizardRegistry) pruneLocked(now time.Time) {
	for id, inst := range reg.byID {
		if now.Sub(inst.CreatedAt) > wizardTTL {
			delete(reg.byID, id)
		}
	}
}
