package onboarding

import (
	"errors"
	"strings"

	"studio/internal/domain/appointment"
)

// Onboarding roles.
const (
	RoleClient    = "client"
	RoleAssistant = "assistant"
	RoleAdmin     = "admin"
)

// ValidRoles contains all valid onboarding roles.
var ValidRoles = []string{RoleClient, RoleAssistant, RoleAdmin}

// Contact preference constants for the client flow.
const (
	ContactEmail = "email"
	ContactSMS   = "sms"
)

// Domain errors
var (
	ErrInvalidRole   = errors.New("role must be one of: client, assistant, admin")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrNoSelection   = errors.New("at least one selection is required")
	ErrEmptySlug     = errors.New("booking slug cannot be empty")
	ErrNoServices    = errors.New("at least one service must be enabled")
	ErrBadReferral   = errors.New("referral email must be valid when a referral is named")
	ErrUnknownStepID = errors.New("unknown wizard step")
)

// Form is the per-role onboarding form state. A wizard run owns exactly one
// form; the currently rendered step is the only writer.
type Form interface {
	// Role returns the onboarding role this form belongs to.
	Role() string
	// Steps returns the active step list, derived from current form values.
	Steps() []Step
	// CanAdvance reports whether the given step's local validity predicate
	// passes. Unknown step IDs never advance.
	CanAdvance(stepID string) bool
}

// Referral is the optional refer-a-friend sub-form on the client flow.
type Referral struct {
	Name  string
	Email string
}

// ClientForm collects a new client's details.
type ClientForm struct {
	Name      string
	Email     string
	Phone     string
	Interests []string // service categories (lash, jewelry, crochet, consulting)

	// Allergies step, only shown when Interests include lash or jewelry.
	Allergies    string
	AllergiesAck bool // client confirmed the allergy information is accurate

	ContactPreference string // email or sms
	ReminderOptIn     bool

	Referral Referral
}

// Role returns RoleClient.
func (f *ClientForm) Role() string { return RoleClient }

// NeedsAllergiesStep reports whether the allergies step belongs in this
// client's flow: lash and jewelry services involve skin contact.
func (f *ClientForm) NeedsAllergiesStep() bool {
	for _, interest := range f.Interests {
		if interest == appointment.CategoryLash || interest == appointment.CategoryJewelry {
			return true
		}
	}
	return false
}

// CanAdvance implements the per-step validity predicate for the client flow.
// PRE: none
// POST: returns false for unknown step IDs
func (f *ClientForm) CanAdvance(stepID string) bool {
	switch stepID {
	case StepName:
		return strings.TrimSpace(f.Name) != ""
	case StepContact:
		return validEmail(f.Email)
	case StepInterests:
		return len(f.Interests) > 0
	case StepAllergies:
		return f.AllergiesAck
	case StepPreferences:
		return f.ContactPreference == ContactEmail || f.ContactPreference == ContactSMS
	case StepReferral:
		// Optional step: advance unless a named referral has a bad email.
		if strings.TrimSpace(f.Referral.Name) == "" {
			return true
		}
		return validEmail(f.Referral.Email)
	}
	return false
}

// AssistantForm collects a staff member's details.
type AssistantForm struct {
	Name         string
	Email        string
	Phone        string
	Skills       []string // service categories the assistant covers
	Availability []string // weekday names the assistant works
	Bio          string
}

// Role returns RoleAssistant.
func (f *AssistantForm) Role() string { return RoleAssistant }

// CanAdvance implements the per-step validity predicate for the assistant flow.
func (f *AssistantForm) CanAdvance(stepID string) bool {
	switch stepID {
	case StepName:
		return strings.TrimSpace(f.Name) != ""
	case StepContact:
		return validEmail(f.Email)
	case StepSkills:
		return len(f.Skills) > 0
	case StepAvailability:
		return len(f.Availability) > 0
	}
	return false
}

// ServiceConfig is one per-service settings row on the admin flow.
type ServiceConfig struct {
	Category        string // lash, jewelry, crochet, consulting
	Enabled         bool
	PriceCents      int
	DurationMinutes int
}

// RewardsConfig is the rewards-program configuration on the admin flow.
type RewardsConfig struct {
	Enabled         bool
	PointsPerVisit  int
	RedeemThreshold int // points needed for a reward
}

// AdminForm collects a studio owner's setup details.
type AdminForm struct {
	StudioName  string
	OwnerName   string
	Email       string
	BookingSlug string // public booking-link path segment
	Services    []ServiceConfig
	Rewards     RewardsConfig
}

// Role returns RoleAdmin.
func (f *AdminForm) Role() string { return RoleAdmin }

// EnabledServices returns the services the owner switched on.
func (f *AdminForm) EnabledServices() []ServiceConfig {
	var enabled []ServiceConfig
	for _, s := range f.Services {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// CanAdvance implements the per-step validity predicate for the admin flow.
func (f *AdminForm) CanAdvance(stepID string) bool {
	switch stepID {
	case StepStudio:
		return strings.TrimSpace(f.StudioName) != "" && strings.TrimSpace(f.OwnerName) != ""
	case StepContact:
		return validEmail(f.Email) && strings.TrimSpace(f.BookingSlug) != ""
	case StepServices:
		return len(f.EnabledServices()) > 0
	case StepRewards:
		if !f.Rewards.Enabled {
			return true
		}
		return f.Rewards.PointsPerVisit > 0 && f.Rewards.RedeemThreshold > 0
	}
	return false
}

// NewForm creates the default form state for a role at wizard start.
// PRE: role is one of ValidRoles
// POST: returns a ready form or ErrInvalidRole
func NewForm(role string) (Form, error) {
	switch role {
	case RoleClient:
		return &ClientForm{ContactPreference: ContactEmail, ReminderOptIn: true}, nil
	case RoleAssistant:
		return &AssistantForm{}, nil
	case RoleAdmin:
		form := &AdminForm{}
		for _, c := range appointment.ValidCategories {
			form.Services = append(form.Services, ServiceConfig{Category: c})
		}
		return form, nil
	}
	return nil, ErrInvalidRole
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.Contains(email, "@")
}
