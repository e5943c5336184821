package onboarding

// Step IDs. Shared IDs (name, contact) mean different fields per role; the
// owning form's CanAdvance decides what "valid" means for each.
const (
	StepName         = "name"
	StepContact      = "contact"
	StepInterests    = "interests"
	StepAllergies    = "allergies"
	StepPreferences  = "preferences"
	StepReferral     = "referral"
	StepSkills       = "skills"
	StepAvailability = "availability"
	StepStudio       = "studio"
	StepServices     = "services"
	StepRewards      = "rewards"
)

// Step describes one screen of the onboarding flow.
type Step struct {
	ID    string
	Title string
	Hint  string // side-panel copy, Markdown
}

// clientSteps is the full client step list before conditional filtering.
var clientSteps = []Step{
	{ID: StepName, Title: "Welcome", Hint: "Tell us who you are so we can greet you properly."},
	{ID: StepContact, Title: "Stay in touch", Hint: "We only use your details for booking updates."},
	{ID: StepInterests, Title: "What brings you in?", Hint: "Pick every service you're curious about — you can always change this later."},
	{ID: StepAllergies, Title: "Allergies & sensitivities", Hint: "Lash adhesives and jewelry metals can irritate sensitive skin. Help us keep you safe."},
	{ID: StepPreferences, Title: "Preferences", Hint: "Choose how you'd like to hear from us."},
	{ID: StepReferral, Title: "Refer a friend", Hint: "Know someone who'd love the studio? This step is optional."},
}

// assistantSteps is the staff onboarding step list.
var assistantSteps = []Step{
	{ID: StepName, Title: "Welcome aboard", Hint: "Your name as clients will see it on their bookings."},
	{ID: StepContact, Title: "Contact details", Hint: "The studio uses these for scheduling and payroll."},
	{ID: StepSkills, Title: "Your services", Hint: "Select every service you can take bookings for."},
	{ID: StepAvailability, Title: "Availability", Hint: "Pick the days you normally work."},
}

// adminSteps is the studio-owner setup step list.
var adminSteps = []Step{
	{ID: StepStudio, Title: "Your studio", Hint: "The studio name appears on your public booking page."},
	{ID: StepContact, Title: "Contact & booking link", Hint: "Your booking slug becomes the shareable link clients use to book."},
	{ID: StepServices, Title: "Services & pricing", Hint: "Enable the services you offer and set default prices and durations."},
	{ID: StepRewards, Title: "Rewards program", Hint: "Optional: reward repeat clients with points per visit."},
}

// Steps returns the client flow with the allergies step filtered by the
// interest predicate.
// POST: allergies appears iff NeedsAllergiesStep()
func (f *ClientForm) Steps() []Step {
	if f.NeedsAllergiesStep() {
		return clientSteps
	}
	steps := make([]Step, 0, len(clientSteps)-1)
	for _, s := range clientSteps {
		if s.ID == StepAllergies {
			continue
		}
		steps = append(steps, s)
	}
	return steps
}

// Steps returns the assistant flow, which is static.
func (f *AssistantForm) Steps() []Step { return assistantSteps }

// Steps returns the admin flow, which is static.
func (f *AdminForm) Steps() []Step { return adminSteps }
