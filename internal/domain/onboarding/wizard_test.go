package onboarding

import (
	"testing"

	"studio/internal/domain/appointment"
)

// advanceTo fills the client form enough to pass every step and walks forward n steps.
func filledClientWizard(t *testing.T) *Wizard {
	t.Helper()
	w, err := NewWizard("w1", RoleClient)
	if err != nil {
		t.Fatalf("NewWizard failed: %v", err)
	}
	f := w.Form.(*ClientForm)
	f.Name = "Mia Harper"
	f.Email = "mia@example.com"
	f.Interests = []string{appointment.CategoryLash}
	f.AllergiesAck = true
	return w
}

// TestWizard_WalkToCompletion walks a client wizard through every step.
func TestWizard_WalkToCompletion(t *testing.T) {
	w := filledClientWizard(t)
	total := len(w.Steps())
	for i := 0; i < total; i++ {
		if w.Complete() {
			t.Fatalf("wizard complete early at step %d", i)
		}
		if err := w.Next(); err != nil {
			t.Fatalf("Next at step %d failed: %v", i, err)
		}
	}
	if !w.Complete() {
		t.Fatal("wizard should be complete after last step")
	}
	if w.StepIndex != total {
		t.Errorf("StepIndex = %d, want %d", w.StepIndex, total)
	}
	if err := w.Next(); err != ErrAlreadyComplete {
		t.Errorf("Next past completion: got %v, want ErrAlreadyComplete", err)
	}
}

// TestWizard_NextBlockedByPredicate verifies Next refuses an incomplete step.
func TestWizard_NextBlockedByPredicate(t *testing.T) {
	w, _ := NewWizard("w1", RoleClient)
	if err := w.Next(); err != ErrCannotAdvance {
		t.Fatalf("expected ErrCannotAdvance on empty name step, got: %v", err)
	}
	if w.StepIndex != 0 {
		t.Errorf("StepIndex moved to %d on blocked Next", w.StepIndex)
	}
}

// TestWizard_BackFloorsAtZero verifies Back never goes negative.
func TestWizard_BackFloorsAtZero(t *testing.T) {
	w := filledClientWizard(t)
	w.Back()
	if w.StepIndex != 0 {
		t.Errorf("Back at step 0: StepIndex = %d, want 0", w.StepIndex)
	}
	_ = w.Next()
	_ = w.Next()
	w.Back()
	if w.StepIndex != 1 {
		t.Errorf("StepIndex = %d, want 1", w.StepIndex)
	}
}

// TestWizard_ReclampAfterStepListShrinks reproduces the allergies-step removal:
// the cursor sits past the allergies step, the client deselects lash, and the
// index re-clamps to the now-shorter list.
func TestWizard_ReclampAfterStepListShrinks(t *testing.T) {
	w := filledClientWizard(t)
	for !w.Complete() {
		if err := w.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
	}
	longLen := len(w.Steps())

	f := w.Form.(*ClientForm)
	f.Interests = []string{appointment.CategoryCrochet}
	shortLen := len(w.Steps())
	if shortLen != longLen-1 {
		t.Fatalf("step list = %d, want %d after deselecting lash", shortLen, longLen-1)
	}

	// Cursor now points past the shorter list.
	if w.StepIndex <= shortLen-1 {
		t.Fatalf("precondition broken: StepIndex %d not past shortened list", w.StepIndex)
	}
	w.ClampIndex()
	if w.StepIndex != shortLen {
		t.Errorf("StepIndex = %d after clamp, want %d", w.StepIndex, shortLen)
	}
	if !w.Complete() {
		t.Error("clamped wizard should still be complete")
	}
}

// TestWizard_OneShotSubmit verifies the submit guard fires at most once and
// reopens only after an explicit failure.
func TestWizard_OneShotSubmit(t *testing.T) {
	w := filledClientWizard(t)

	if err := w.BeginSubmit(); err != nil {
		t.Fatalf("first BeginSubmit failed: %v", err)
	}
	if err := w.BeginSubmit(); err != ErrSubmitInFlight {
		t.Fatalf("second BeginSubmit while in flight: got %v, want ErrSubmitInFlight", err)
	}

	w.MarkSubmitted()
	if err := w.BeginSubmit(); err != ErrAlreadySubmitted {
		t.Fatalf("BeginSubmit after success: got %v, want ErrAlreadySubmitted", err)
	}
}

// TestWizard_RetryAfterFailure verifies failure re-opens the submission slot.
func TestWizard_RetryAfterFailure(t *testing.T) {
	w := filledClientWizard(t)

	if err := w.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit failed: %v", err)
	}
	w.MarkSubmitFailed()
	if w.SubmitState != SubmitFailed {
		t.Fatalf("SubmitState = %q, want failed", w.SubmitState)
	}

	if err := w.BeginSubmit(); err != nil {
		t.Fatalf("retry BeginSubmit after failure: %v", err)
	}
	w.MarkSubmitted()
	if w.SubmitState != SubmitSucceeded {
		t.Errorf("SubmitState = %q, want succeeded", w.SubmitState)
	}
}

// TestNewWizard_InvalidRole verifies role validation at wizard start.
func TestNewWizard_InvalidRole(t *testing.T) {
	if _, err := NewWizard("w1", "receptionist"); err != ErrInvalidRole {
		t.Errorf("expected ErrInvalidRole, got: %v", err)
	}
}
