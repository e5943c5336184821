package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"studio/internal/adapters/http/middleware"
	"studio/internal/application/orchestrators"
	"studio/internal/domain/appointment"
	"studio/internal/domain/onboarding"
)

const wizardCookieName = "studio_wizard"

// wizardStore holds in-flight onboarding runs keyed by a draft cookie token.
// Runs are server-side state only; nothing is persisted until the final
// submission fires.
type wizardStore struct {
	mu   sync.Mutex
	runs map[string]*onboarding.Wizard
}

func newWizardStore() *wizardStore {
	return &wizardStore{runs: make(map[string]*onboarding.Wizard)}
}

// Create starts a wizard run for a role and returns its draft token.
func (s *wizardStore) Create(role string) (string, error) {
	token := generateID()
	wiz, err := onboarding.NewWizard(token, role)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[token] = wiz
	return token, nil
}

// With runs fn against the wizard for token while holding the store lock.
// Holding the lock across the submission serializes a double-click on the
// finish button, so the one-shot submit guard sees the calls in order.
func (s *wizardStore) With(token string, fn func(*onboarding.Wizard)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wiz, ok := s.runs[token]
	if !ok {
		return false
	}
	// Abandoned drafts expire after 24 hours
	if time.Since(wiz.CreatedAt) > 24*time.Hour {
		delete(s.runs, token)
		return false
	}
	fn(wiz)
	return true
}

// Delete removes a finished or abandoned run.
func (s *wizardStore) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, token)
}

// wizards is the global draft store (package-level, like sessions).
var wizards = newWizardStore()

func setWizardCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteStrictMode,
		Path:     "/onboarding",
		MaxAge:   86400,
	})
}

func clearWizardCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     wizardCookieName,
		Value:    "",
		HttpOnly: true,
		Path:     "/onboarding",
		MaxAge:   -1,
	})
}

// handleOnboardingStart handles GET /onboarding (role picker) and
// POST /onboarding (start a run for the chosen role).
func handleOnboardingStart(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "onboarding_start.html", map[string]any{
			"Roles": onboarding.ValidRoles,
		})
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	role := r.FormValue("role")
	token, err := wizards.Create(role)
	if err != nil {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}
	setWizardCookie(w, token)
	http.Redirect(w, r, "/onboarding/step", http.StatusSeeOther)
}

// wizardFromRequest resolves the caller's draft token.
func wizardFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(wizardCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// stepViewModel is the per-step render state for the wizard page.
type stepViewModel struct {
	Role        string
	Step        onboarding.Step
	StepNumber  int // 1-indexed
	StepCount   int
	Form        onboarding.Form
	Complete    bool
	SubmitState string
	Error       string
}

func buildStepViewModel(wiz *onboarding.Wizard, errMsg string) stepViewModel {
	vm := stepViewModel{
		Role:        wiz.Role(),
		StepNumber:  wiz.StepIndex + 1,
		StepCount:   len(wiz.Steps()),
		Form:        wiz.Form,
		Complete:    wiz.Complete(),
		SubmitState: wiz.SubmitState,
		Error:       errMsg,
	}
	if step, ok := wiz.CurrentStep(); ok {
		vm.Step = step
	}
	return vm
}

// handleOnboardingStep handles GET (render current step or review) and
// POST (apply values then move) for /onboarding/step.
func handleOnboardingStep(w http.ResponseWriter, r *http.Request) {
	token, ok := wizardFromRequest(r)
	if !ok {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		var vm stepViewModel
		found := wizards.With(token, func(wiz *onboarding.Wizard) {
			vm = buildStepViewModel(wiz, "")
		})
		if !found {
			clearWizardCookie(w)
			http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "onboarding_step.html", vm)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(vm)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	action := r.FormValue("action")
	var stepErr error
	found := wizards.With(token, func(wiz *onboarding.Wizard) {
		if step, ok := wiz.CurrentStep(); ok {
			applyStepValues(wiz.Form, step.ID, r)
			// Deselecting lash/jewelry can shrink the step list under the cursor.
			wiz.ClampIndex()
		}
		switch action {
		case "back":
			wiz.Back()
		default:
			stepErr = wiz.Next()
		}
	})
	if !found {
		clearWizardCookie(w)
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	if stepErr != nil && !errors.Is(stepErr, onboarding.ErrAlreadyComplete) {
		if !isHTMLRequest(r) {
			http.Error(w, stepErr.Error(), http.StatusUnprocessableEntity)
			return
		}
		var vm stepViewModel
		wizards.With(token, func(wiz *onboarding.Wizard) {
			vm = buildStepViewModel(wiz, "Please complete this step before continuing.")
		})
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderTemplate(w, r, "onboarding_step.html", vm)
		return
	}

	http.Redirect(w, r, "/onboarding/step", http.StatusSeeOther)
}

// doneViewModel carries the completion screen state. Admin runs get their
// booking link, a share panel, and a summary of what the wizard configured.
type doneViewModel struct {
	Role        string
	StudioName  string
	OwnerName   string
	BookingSlug string
	BookingURL  string
	Services    []onboarding.ServiceConfig
	Rewards     onboarding.RewardsConfig
}

func buildDoneViewModel(wiz *onboarding.Wizard) doneViewModel {
	vm := doneViewModel{Role: wiz.Role()}
	if f, ok := wiz.Form.(*onboarding.AdminForm); ok {
		vm.StudioName = f.StudioName
		vm.OwnerName = f.OwnerName
		vm.BookingSlug = f.BookingSlug
		vm.BookingURL = strings.TrimRight(BaseURL, "/") + "/book/" + f.BookingSlug
		vm.Services = f.EnabledServices()
		vm.Rewards = f.Rewards
	}
	return vm
}

// handleOnboardingSubmit handles POST /onboarding/submit: the one-shot save.
// A retry after a failed save posts here again; a duplicate submit after
// success is answered with the done page without touching the store.
func handleOnboardingSubmit(w http.ResponseWriter, r *http.Request) {
	token, ok := wizardFromRequest(r)
	if !ok {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	var (
		submitErr error
		role      string
		done      doneViewModel
	)
	found := wizards.With(token, func(wiz *onboarding.Wizard) {
		role = wiz.Role()
		_, submitErr = orchestrators.ExecuteCompleteOnboarding(r.Context(), wiz, orchestrators.CompleteOnboardingDeps{
			SubmissionStore: stores.OnboardingStore,
			EmailSender:     emailSender,
			FromAddress:     emailFromAddress,
			ReplyTo:         emailReplyTo,
			GenerateID:      generateID,
			Now:             timeNow,
		})
		done = buildDoneViewModel(wiz)
	})
	if !found {
		clearWizardCookie(w)
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	switch {
	case submitErr == nil, errors.Is(submitErr, onboarding.ErrAlreadySubmitted):
		clearWizardCookie(w)
		wizards.Delete(token)
		if !isHTMLRequest(r) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"role": role, "status": "submitted"})
			return
		}
		renderTemplate(w, r, "onboarding_done.html", done)
	case errors.Is(submitErr, orchestrators.ErrWizardIncomplete):
		http.Redirect(w, r, "/onboarding/step", http.StatusSeeOther)
	case errors.Is(submitErr, onboarding.ErrSubmitInFlight):
		http.Error(w, "Submission already in progress", http.StatusConflict)
	default:
		// Save failed; the wizard re-opened the submit slot for a retry.
		if !isHTMLRequest(r) {
			http.Error(w, "submission failed", http.StatusInternalServerError)
			return
		}
		var vm stepViewModel
		wizards.With(token, func(wiz *onboarding.Wizard) {
			vm = buildStepViewModel(wiz, "We couldn't save your details. Please try again.")
		})
		w.WriteHeader(http.StatusInternalServerError)
		renderTemplate(w, r, "onboarding_step.html", vm)
	}
}

// applyStepValues copies the posted fields for one step onto the form. Only
// the rendered step's fields are writable; other fields are left alone.
func applyStepValues(form onboarding.Form, stepID string, r *http.Request) {
	switch f := form.(type) {
	case *onboarding.ClientForm:
		applyClientStep(f, stepID, r)
	case *onboarding.AssistantForm:
		applyAssistantStep(f, stepID, r)
	case *onboarding.AdminForm:
		applyAdminStep(f, stepID, r)
	}
}

func applyClientStep(f *onboarding.ClientForm, stepID string, r *http.Request) {
	switch stepID {
	case onboarding.StepName:
		f.Name = r.FormValue("name")
	case onboarding.StepContact:
		f.Email = r.FormValue("email")
		f.Phone = r.FormValue("phone")
	case onboarding.StepInterests:
		f.Interests = r.Form["interests"]
	case onboarding.StepAllergies:
		f.Allergies = r.FormValue("allergies")
		f.AllergiesAck = r.FormValue("allergies_ack") == "on"
	case onboarding.StepPreferences:
		f.ContactPreference = r.FormValue("contact_preference")
		f.ReminderOptIn = r.FormValue("reminder_opt_in") == "on"
	case onboarding.StepReferral:
		f.Referral.Name = r.FormValue("referral_name")
		f.Referral.Email = r.FormValue("referral_email")
	}
}

func applyAssistantStep(f *onboarding.AssistantForm, stepID string, r *http.Request) {
	switch stepID {
	case onboarding.StepName:
		f.Name = r.FormValue("name")
	case onboarding.StepContact:
		f.Email = r.FormValue("email")
		f.Phone = r.FormValue("phone")
	case onboarding.StepSkills:
		f.Skills = r.Form["skills"]
	case onboarding.StepAvailability:
		f.Availability = r.Form["availability"]
	}
}

func applyAdminStep(f *onboarding.AdminForm, stepID string, r *http.Request) {
	switch stepID {
	case onboarding.StepStudio:
		f.StudioName = r.FormValue("studio_name")
		f.OwnerName = r.FormValue("owner_name")
	case onboarding.StepContact:
		f.Email = r.FormValue("email")
		f.BookingSlug = r.FormValue("booking_slug")
	case onboarding.StepServices:
		for i := range f.Services {
			c := f.Services[i].Category
			f.Services[i].Enabled = r.FormValue("enabled_"+c) == "on"
			f.Services[i].PriceCents, _ = strconv.Atoi(r.FormValue("price_" + c))
			f.Services[i].DurationMinutes, _ = strconv.Atoi(r.FormValue("duration_" + c))
		}
	case onboarding.StepRewards:
		f.Rewards.Enabled = r.FormValue("rewards_enabled") == "on"
		f.Rewards.PointsPerVisit, _ = strconv.Atoi(r.FormValue("points_per_visit"))
		f.Rewards.RedeemThreshold, _ = strconv.Atoi(r.FormValue("redeem_threshold"))
	}
}

// categoryOptions exposes the service categories to the wizard templates.
func categoryOptions() []string {
	return appointment.ValidCategories
}
