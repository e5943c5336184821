package onboarding

import (
	"errors"
	"time"
)

// Submission states for a wizard run.
// INVARIANT: idle -> in_flight -> (succeeded | failed); failed -> in_flight (retry).
// succeeded is terminal: the form is never mutated or resubmitted after it.
const (
	SubmitIdle      = "idle"
	SubmitInFlight  = "in_flight"
	SubmitSucceeded = "succeeded"
	SubmitFailed    = "failed"
)

// Wizard state errors
var (
	ErrCannotAdvance    = errors.New("current step is not complete")
	ErrAlreadyComplete  = errors.New("wizard already reached its final step")
	ErrSubmitInFlight   = errors.New("submission already in flight")
	ErrAlreadySubmitted = errors.New("submission already succeeded")
)

// Wizard is one onboarding run: a role, its form, and a step cursor.
// StepIndex is always within [0, len(steps)]; index == len(steps) means the
// wizard is complete and the submission fires.
type Wizard struct {
	ID          string
	Form        Form
	StepIndex   int
	SubmitState string
	CreatedAt   time.Time
}

// NewWizard starts a wizard run for a role.
// PRE: role is one of ValidRoles
// POST: StepIndex == 0, SubmitState == idle
func NewWizard(id, role string) (*Wizard, error) {
	form, err := NewForm(role)
	if err != nil {
		return nil, err
	}
	return &Wizard{
		ID:          id,
		Form:        form,
		SubmitState: SubmitIdle,
		CreatedAt:   time.Now(),
	}, nil
}

// Role returns the wizard's onboarding role.
func (w *Wizard) Role() string { return w.Form.Role() }

// Steps returns the active step list, recomputed from current form values.
func (w *Wizard) Steps() []Step { return w.Form.Steps() }

// Complete reports whether the step cursor has passed the last step.
func (w *Wizard) Complete() bool {
	return w.StepIndex >= len(w.Steps())
}

// CurrentStep returns the active step descriptor.
// POST: ok is false when the wizard is complete
func (w *Wizard) CurrentStep() (Step, bool) {
	steps := w.Steps()
	if w.StepIndex < 0 || w.StepIndex >= len(steps) {
		return Step{}, false
	}
	return steps[w.StepIndex], true
}

// ClampIndex pulls the step cursor back into range after the step list
// shrinks (deselecting lash/jewelry removes the allergies step from under
// the cursor).
// POST: StepIndex is within [0, len(steps)]
func (w *Wizard) ClampIndex() {
	if n := len(w.Steps()); w.StepIndex > n {
		w.StepIndex = n
	}
	if w.StepIndex < 0 {
		w.StepIndex = 0
	}
}

// Next advances to the following step if the current step's predicate passes.
// PRE: wizard is not complete
// POST: on success StepIndex is incremented; reaching len(steps) means the
// run is complete and the caller must trigger the one-shot submission
func (w *Wizard) Next() error {
	step, ok := w.CurrentStep()
	if !ok {
		return ErrAlreadyComplete
	}
	if !w.Form.CanAdvance(step.ID) {
		return ErrCannotAdvance
	}
	w.StepIndex++
	return nil
}

// Back moves to the previous step, floored at 0.
// POST: StepIndex >= 0
func (w *Wizard) Back() {
	if w.StepIndex > 0 {
		w.StepIndex--
	}
}

// BeginSubmit claims the one-shot submission slot.
// The save fires at most once per logical attempt: a second call while a
// submission is in flight or after success returns an error; only an explicit
// failure re-opens the slot for retry.
// POST: on nil return, SubmitState == in_flight
func (w *Wizard) BeginSubmit() error {
	switch w.SubmitState {
	case SubmitInFlight:
		return ErrSubmitInFlight
	case SubmitSucceeded:
		return ErrAlreadySubmitted
	}
	w.SubmitState = SubmitInFlight
	return nil
}

// MarkSubmitted records a successful submission.
// POST: SubmitState == succeeded (terminal)
func (w *Wizard) MarkSubmitted() {
	w.SubmitState = SubmitSucceeded
}

// MarkSubmitFailed records a failed submission, permitting a manual retry.
// POST: SubmitState == failed; BeginSubmit succeeds again
func (w *Wizard) MarkSubmitFailed() {
	w.SubmitState = SubmitFailed
}
