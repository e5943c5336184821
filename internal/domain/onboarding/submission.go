package onboarding

import "time"

// Submission is the persisted record of a completed wizard run. Payload is the
// JSON snapshot of the form at submission time; the schema varies by role.
type Submission struct {
	ID        string
	Role      string
	Name      string
	Email     string
	Payload   string
	CreatedAt time.Time
}
