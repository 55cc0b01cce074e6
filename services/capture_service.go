package services

import (
	"fmt"
	"sync"

	"nutritrack/models"
)

// CaptureState names a position in the meal-capture flow. States are plain
// strings so a session snapshot can be serialized straight into a response.
type CaptureState string

const (
	StateIdle       CaptureState = "idle"
	StateSubmitting CaptureState = "submitting"
	StateConfirming CaptureState = "confirming"
	StateRejected   CaptureState = "rejected"
	StateFailed     CaptureState = "failed"
	StateCommitted  CaptureState = "committed"
)

// MealDraft is the unconfirmed result of one capture. It exists only between
// a successful inference and the user's confirm/cancel decision and is never
// persisted directly.
type MealDraft struct {
	Name     string `json:"name"`
	WeightG  *int   `json:"weight_g,omitempty"`
	Kcal     int    `json:"kcal"`
	ProteinG int    `json:"protein_g"`
	CarbsG   int    `json:"carbs_g"`
	FatG     int    `json:"fat_g"`
}

// NutritionInferer is the slice of the inference gateway the capture flow uses.
type NutritionInferer interface {
	InferImage(data []byte, filename string) (*InferenceResult, error)
	QuickLog(description string, weightG *int) (*InferenceResult, error)
	AnalyzeText(description string, weightG *int) (*InferenceResult, error)
}

// MealCreator commits confirmed drafts to the meal store.
type MealCreator interface {
	Create(draft MealDraft) (*models.Meal, error)
}

// CaptureService owns the capture state machine for one session:
//
//	idle → submitting → {confirming | rejected | failed} → (committed | idle)
//
// At most one submission is in flight at a time; a second submit while one is
// pending (or while a draft awaits confirmation) fails with
// ErrAlreadyInProgress instead of queueing.
type CaptureService struct {
	mu      sync.Mutex
	state   CaptureState
	draft   *MealDraft
	reason  string
	inferer NutritionInferer
	store   MealCreator
}

func NewCaptureService(inferer NutritionInferer, store MealCreator) *CaptureService {
	return &CaptureService{state: StateIdle, inferer: inferer, store: store}
}

// CaptureSnapshot is the serializable view of the session.
type CaptureSnapshot struct {
	State  CaptureState `json:"state"`
	Draft  *MealDraft   `json:"draft,omitempty"`
	Reason string       `json:"reason,omitempty"`
}

func (s *CaptureService) Snapshot() CaptureSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := CaptureSnapshot{State: s.state, Reason: s.reason}
	if s.draft != nil {
		d := *s.draft
		snap.Draft = &d
	}
	return snap
}

func (s *CaptureService) State() CaptureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SubmitImage runs a photo capture through inference and stages a draft.
func (s *CaptureService) SubmitImage(data []byte, filename string) (*MealDraft, error) {
	return s.submit(func() (*InferenceResult, error) {
		return s.inferer.InferImage(data, filename)
	})
}

// SubmitQuick handles the short-phrase mode ("1 apple").
func (s *CaptureService) SubmitQuick(description string, weightG *int) (*MealDraft, error) {
	return s.submit(func() (*InferenceResult, error) {
		return s.inferer.QuickLog(description, weightG)
	})
}

// SubmitDetailed handles the free-form multi-item description mode.
func (s *CaptureService) SubmitDetailed(description string, weightG *int) (*MealDraft, error) {
	return s.submit(func() (*InferenceResult, error) {
		return s.inferer.AnalyzeText(description, weightG)
	})
}

func (s *CaptureService) submit(call func() (*InferenceResult, error)) (*MealDraft, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	// Inference runs outside the lock so a concurrent submit fails fast with
	// ErrAlreadyInProgress instead of blocking behind a slow collaborator.
	res, err := call()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.draft = nil
		s.reason = err.Error()
		return nil, err
	}

	draft, ok := stageDraft(res)
	if !ok {
		s.state = StateRejected
		s.draft = nil
		s.reason = ErrNoConfidentResult.Error()
		return nil, fmt.Errorf("%w: no food detected with sufficient confidence", ErrNoConfidentResult)
	}

	s.state = StateConfirming
	s.draft = draft
	s.reason = ""
	staged := *draft
	return &staged, nil
}

// begin moves the session into submitting. rejected, failed and committed are
// resting states equivalent to idle: the previous capture instance is over.
func (s *CaptureService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting || s.state == StateConfirming {
		return fmt.Errorf("%w", ErrAlreadyInProgress)
	}
	s.state = StateSubmitting
	s.draft = nil
	s.reason = ""
	return nil
}

// stageDraft applies the confidence gate: a non-empty dish list (first dish
// wins, the rest are discarded) or a single object with a name and a defined
// kcal. Anything else stages nothing.
func stageDraft(res *InferenceResult) (*MealDraft, bool) {
	if res == nil {
		return nil, false
	}
	if len(res.Dishes) > 0 {
		d := res.Dishes[0]
		return &MealDraft{
			Name:     d.Name,
			WeightG:  d.WeightG,
			Kcal:     d.Kcal,
			ProteinG: d.ProteinG,
			CarbsG:   d.CarbsG,
			FatG:     d.FatG,
		}, true
	}
	if res.Name != "" && res.Kcal != nil {
		return &MealDraft{
			Name:     res.Name,
			WeightG:  res.WeightG,
			Kcal:     *res.Kcal,
			ProteinG: res.ProteinG,
			CarbsG:   res.CarbsG,
			FatG:     res.FatG,
		}, true
	}
	return nil, false
}

// Confirm commits the staged draft. On store failure the draft is dropped
// (at most once, no queued retry) and the error is surfaced to the caller.
func (s *CaptureService) Confirm() (*models.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirming || s.draft == nil {
		return nil, fmt.Errorf("%w: no draft staged", ErrInvalidInput)
	}

	draft := *s.draft
	s.draft = nil

	meal, err := s.store.Create(draft)
	if err != nil {
		s.state = StateIdle
		s.reason = err.Error()
		return nil, err
	}

	s.state = StateCommitted
	s.reason = ""
	return meal, nil
}

// Cancel discards the staged draft with no side effects.
func (s *CaptureService) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateConfirming {
		return fmt.Errorf("%w: no draft staged", ErrInvalidInput)
	}
	s.draft = nil
	s.reason = ""
	s.state = StateIdle
	return nil
}
