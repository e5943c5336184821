package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"studio/internal/domain/appointment"

	"github.com/google/uuid"
)

// AppointmentStoreForWrite defines the store interface needed by the
// appointment write orchestrators.
type AppointmentStoreForWrite interface {
	GetByID(ctx context.Context, id string) (appointment.Appointment, error)
	Save(ctx context.Context, a appointment.Appointment) error
}

// CreateAppointmentInput carries input for creating a booking.
type CreateAppointmentInput struct {
	ClientName      string
	Category        string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM
	DurationMinutes int
	PriceCents      int
	Status          string // defaults to pending
	Notes           string
	Location        string
}

// CreateAppointmentDeps holds dependencies for CreateAppointment.
type CreateAppointmentDeps struct {
	AppointmentStore AppointmentStoreForWrite
}

// ExecuteCreateAppointment validates and persists a new booking.
// PRE: input fields satisfy appointment.Validate
// POST: appointment saved with a fresh ID
func ExecuteCreateAppointment(ctx context.Context, input CreateAppointmentInput, deps CreateAppointmentDeps) (appointment.Appointment, error) {
	status := input.Status
	if status == "" {
		status = appointment.StatusPending
	}

	a := appointment.Appointment{
		ID:              uuid.New().String(),
		ClientName:      input.ClientName,
		Category:        input.Category,
		Date:            input.Date,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		PriceCents:      input.PriceCents,
		Status:          status,
		Notes:           input.Notes,
		Location:        input.Location,
	}

	if err := a.Validate(); err != nil {
		return appointment.Appointment{}, err
	}
	if err := deps.AppointmentStore.Save(ctx, a); err != nil {
		return appointment.Appointment{}, err
	}

	slog.Info("appointment_event", "event", "appointment_created", "appointment_id", a.ID, "category", a.Category, "date", a.Date)
	return a, nil
}

// UpdateAppointmentStatusInput carries input for a status transition.
type UpdateAppointmentStatusInput struct {
	AppointmentID string
	Status        string
}

var ErrUnknownStatus = errors.New("unknown appointment status")

// ExecuteUpdateAppointmentStatus moves a booking to a new status.
// Cancellation goes through ExecuteCancelAppointment so the already-cancelled
// guard applies.
// PRE: AppointmentID exists; Status is a valid non-cancelled status
// POST: appointment saved with the new status
func ExecuteUpdateAppointmentStatus(ctx context.Context, input UpdateAppointmentStatusInput, deps CreateAppointmentDeps) (appointment.Appointment, error) {
	if input.Status == appointment.StatusCancelled {
		return ExecuteCancelAppointment(ctx, CancelAppointmentInput{AppointmentID: input.AppointmentID}, CancelAppointmentDeps(deps))
	}

	a, err := deps.AppointmentStore.GetByID(ctx, input.AppointmentID)
	if err != nil {
		return appointment.Appointment{}, err
	}

	prev := a.Status
	a.Status = input.Status
	if err := a.Validate(); err != nil {
		return appointment.Appointment{}, ErrUnknownStatus
	}
	if err := deps.AppointmentStore.Save(ctx, a); err != nil {
		return appointment.Appointment{}, err
	}

	slog.Info("appointment_event", "event", "status_changed", "appointment_id", a.ID, "from", prev, "to", a.Status)
	return a, nil
}

// --- Cancel ---

// CancelAppointmentInput carries input for cancelling a booking.
type CancelAppointmentInput struct {
	AppointmentID string
}

// CancelAppointmentDeps holds dependencies for CancelAppointment.
type CancelAppointmentDeps struct {
	AppointmentStore AppointmentStoreForWrite
}

// ExecuteCancelAppointment cancels a booking.
// PRE: AppointmentID exists
// POST: status is cancelled; cancelling twice returns ErrAlreadyCancelled
func ExecuteCancelAppointment(ctx context.Context, input CancelAppointmentInput, deps CancelAppointmentDeps) (appointment.Appointment, error) {
	a, err := deps.AppointmentStore.GetByID(ctx, input.AppointmentID)
	if err != nil {
		return appointment.Appointment{}, err
	}

	if err := a.Cancel(); err != nil {
		return appointment.Appointment{}, err
	}
	if err := deps.AppointmentStore.Save(ctx, a); err != nil {
		return appointment.Appointment{}, err
	}

	slog.Info("appointment_event", "event", "appointment_cancelled", "appointment_id", a.ID)
	return a, nil
}
