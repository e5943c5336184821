package orchestrators

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	emailAdapter "studio/internal/adapters/email"
	"studio/internal/domain/onboarding"
)

// SubmissionStore defines the store interface needed by CompleteOnboarding.
type SubmissionStore interface {
	Save(ctx context.Context, s onboarding.Submission) error
}

// CompleteOnboardingDeps holds dependencies for CompleteOnboarding.
type CompleteOnboardingDeps struct {
	SubmissionStore SubmissionStore
	EmailSender     emailAdapter.Sender
	FromAddress     string
	ReplyTo         string
	GenerateID      func() string
	Now             func() time.Time
}

var ErrWizardIncomplete = errors.New("wizard has remaining steps")

// ExecuteCompleteOnboarding persists a finished wizard run exactly once.
// The wizard's submit slot guards the save: a concurrent or repeated call
// while one is in flight, or after success, is rejected without touching the
// store. Only a failed save re-opens the slot for retry.
// PRE: wizard has advanced past its final step
// POST: on success SubmitState == succeeded and the submission is persisted;
// on store failure SubmitState == failed and nothing else changes
func ExecuteCompleteOnboarding(ctx context.Context, w *onboarding.Wizard, deps CompleteOnboardingDeps) (onboarding.Submission, error) {
	if !w.Complete() {
		return onboarding.Submission{}, ErrWizardIncomplete
	}
	if err := w.BeginSubmit(); err != nil {
		return onboarding.Submission{}, err
	}

	payload, err := json.Marshal(w.Form)
	if err != nil {
		w.MarkSubmitFailed()
		return onboarding.Submission{}, err
	}

	name, email := contactDetails(w.Form)
	sub := onboarding.Submission{
		ID:        deps.GenerateID(),
		Role:      w.Role(),
		Name:      name,
		Email:     email,
		Payload:   string(payload),
		CreatedAt: deps.Now(),
	}

	if err := deps.SubmissionStore.Save(ctx, sub); err != nil {
		w.MarkSubmitFailed()
		slog.Warn("onboarding_event", "event", "submission_failed", "wizard_id", w.ID, "role", w.Role(), "error", err)
		return onboarding.Submission{}, err
	}

	w.MarkSubmitted()
	slog.Info("onboarding_event", "event", "submission_saved", "wizard_id", w.ID, "role", w.Role(), "submission_id", sub.ID)

	// Welcome email is best-effort; the submission already succeeded.
	if deps.EmailSender != nil && email != "" {
		req := emailAdapter.SendRequest{
			To:      []string{email},
			From:    deps.FromAddress,
			Subject: welcomeSubject(w.Role()),
			HTML:    welcomeBody(w.Role(), name),
			ReplyTo: deps.ReplyTo,
		}
		if _, err := deps.EmailSender.Send(ctx, req); err != nil {
			slog.Warn("onboarding_event", "event", "welcome_email_failed", "submission_id", sub.ID, "error", err)
		}
	}

	return sub, nil
}

// contactDetails pulls the display name and email out of a role-specific form.
func contactDetails(f onboarding.Form) (name, email string) {
	switch form := f.(type) {
	case *onboarding.ClientForm:
		return form.Name, form.Email
	case *onboarding.AssistantForm:
		return form.Name, form.Email
	case *onboarding.AdminForm:
		return form.OwnerName, form.Email
	}
	return "", ""
}

func welcomeSubject(role string) string {
	switch role {
	case onboarding.RoleAdmin:
		return "Your studio is set up"
	case onboarding.RoleAssistant:
		return "Welcome to the team"
	}
	return "Welcome to the studio"
}

func welcomeBody(role, name string) string {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	switch role {
	case onboarding.RoleAdmin:
		return "<p>" + greeting + ",</p><p>Your studio profile is ready. Share your booking link to start taking appointments.</p>"
	case onboarding.RoleAssistant:
		return "<p>" + greeting + ",</p><p>Your staff profile is set up. Your schedule will appear on the dashboard once appointments are assigned.</p>"
	}
	return "<p>" + greeting + ",</p><p>Thanks for joining! You can book your first appointment any time.</p>"
}
