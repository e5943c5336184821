package appointment

import (
	"errors"
	"strings"
	"unicode"
)

// Max length constants for user-editable fields.
const (
	MaxClientNameLength = 100
	MaxNotesLength      = 2000
	MaxLocationLength   = 200
)

// Service categories for the studio's four zones.
const (
	CategoryLash       = "lash"
	CategoryJewelry    = "jewelry"
	CategoryCrochet    = "crochet"
	CategoryConsulting = "consulting"
)

// Booking statuses.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{CategoryLash, CategoryJewelry, CategoryCrochet, CategoryConsulting}

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow}

// Style carries display metadata for a category or status badge.
type Style struct {
	Label string
	Hex   string
	Class string // CSS class for the badge
}

// CategoryStyles maps each service category to its display colour and label.
var CategoryStyles = map[string]Style{
	CategoryLash:       {Label: "Lash", Hex: "#8e44ad", Class: "cat-lash"},
	CategoryJewelry:    {Label: "Jewelry", Hex: "#F9B232", Class: "cat-jewelry"},
	CategoryCrochet:    {Label: "Crochet", Hex: "#16a085", Class: "cat-crochet"},
	CategoryConsulting: {Label: "Consulting", Hex: "#2980b9", Class: "cat-consulting"},
}

// StatusStyles maps each booking status to its display colour and label.
var StatusStyles = map[string]Style{
	StatusPending:    {Label: "Pending", Hex: "#7f8c8d", Class: "status-pending"},
	StatusConfirmed:  {Label: "Confirmed", Hex: "#27ae60", Class: "status-confirmed"},
	StatusInProgress: {Label: "In progress", Hex: "#2980b9", Class: "status-in-progress"},
	StatusCompleted:  {Label: "Completed", Hex: "#16a085", Class: "status-completed"},
	StatusCancelled:  {Label: "Cancelled", Hex: "#e74c3c", Class: "status-cancelled"},
	StatusNoShow:     {Label: "No-show", Hex: "#c0392b", Class: "status-no-show"},
}

// Domain errors
var (
	ErrEmptyClientName  = errors.New("appointment client name cannot be empty")
	ErrInvalidCategory  = errors.New("appointment category must be one of: lash, jewelry, crochet, consulting")
	ErrInvalidStatus    = errors.New("appointment status must be one of: pending, confirmed, in_progress, completed, cancelled, no_show")
	ErrInvalidDate      = errors.New("appointment date must be in YYYY-MM-DD format")
	ErrInvalidStartTime = errors.New("appointment start time must be in HH:MM format")
	ErrInvalidDuration  = errors.New("appointment duration must be positive")
	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
)

// Appointment represents one scheduled booking.
// Dates are local calendar dates ("YYYY-MM-DD"); start times are 24-hour "HH:MM".
// The schedule views treat appointments as read-only; lifecycle changes go through
// the orchestrators.
type Appointment struct {
	ID              string
	ClientName      string
	Category        string // lash, jewelry, crochet, consulting
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM, 24-hour
	DurationMinutes int
	PriceCents      int
	Status          string // pending, confirmed, in_progress, completed, cancelled, no_show
	Notes           string // Markdown, shown in the detail dialog
	Location        string
}

// Validate checks if the Appointment has valid data.
// PRE: Appointment struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Appointment) Validate() error {
	if strings.TrimSpace(a.ClientName) == "" {
		return ErrEmptyClientName
	}
	if len(a.ClientName) > MaxClientNameLength {
		return errors.New("appointment client name cannot exceed 100 characters")
	}
	if !isValidCategory(a.Category) {
		return ErrInvalidCategory
	}
	if !isValidStatus(a.Status) {
		return ErrInvalidStatus
	}
	if !isDate(a.Date) {
		return ErrInvalidDate
	}
	if !isClockTime(a.StartTime) {
		return ErrInvalidStartTime
	}
	if a.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if len(a.Notes) > MaxNotesLength {
		return errors.New("appointment notes cannot exceed 2000 characters")
	}
	if len(a.Location) > MaxLocationLength {
		return errors.New("appointment location cannot exceed 200 characters")
	}
	return nil
}

// Initials returns up to two uppercase initials from the client name for card avatars.
// PRE: none
// POST: returns "" for an empty name, otherwise 1–2 uppercase letters
func (a *Appointment) Initials() string {
	fields := strings.Fields(a.ClientName)
	if len(fields) == 0 {
		return ""
	}
	first := []rune(fields[0])
	initials := []rune{unicode.ToUpper(first[0])}
	if len(fields) > 1 {
		last := []rune(fields[len(fields)-1])
		initials = append(initials, unicode.ToUpper(last[0]))
	}
	return string(initials)
}

// EndMinutes returns the appointment's end as minutes after midnight.
// PRE: StartTime is valid HH:MM
// POST: returns start-minutes + duration
func (a *Appointment) EndMinutes() int {
	h := int(a.StartTime[0]-'0')*10 + int(a.StartTime[1]-'0')
	m := int(a.StartTime[3]-'0')*10 + int(a.StartTime[4]-'0')
	return h*60 + m + a.DurationMinutes
}

// IsCancelled returns true if the appointment has been cancelled.
// INVARIANT: Status field is not mutated
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Cancel sets the appointment status to cancelled.
// PRE: Appointment is not already cancelled
// POST: Status is set to cancelled
func (a *Appointment) Cancel() error {
	if a.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	a.Status = StatusCancelled
	return nil
}

func isValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// isDate reports whether s looks like YYYY-MM-DD.
func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isClockTime reports whether s looks like HH:MM, 24-hour.
func isClockTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for i, r := range s {
		if i == 2 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh < 24 && mm < 60
}
