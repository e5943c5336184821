package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"studio/internal/domain/appointment"
	"studio/internal/domain/timegrid"

	"github.com/google/uuid"
)

// AppointmentStoreForSeed defines the store interface needed by seeding.
type AppointmentStoreForSeed interface {
	List(ctx context.Context) ([]appointment.Appointment, error)
	Save(ctx context.Context, a appointment.Appointment) error
}

// SeedAppointmentsDeps holds dependencies for appointment seeding.
type SeedAppointmentsDeps struct {
	AppointmentStore AppointmentStoreForSeed
}

// ExecuteSeedAppointments populates the database with a realistic studio week.
// It is idempotent and skips when any appointments already exist.
func ExecuteSeedAppointments(ctx context.Context, deps SeedAppointmentsDeps) error {
	existing, err := deps.AppointmentStore.List(ctx)
	if err != nil {
		return fmt.Errorf("seed_appointments: list: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("seed_event", "event", "appointments_skip", "reason", "already_seeded")
		return nil
	}

	now := time.Now()

	// dayOffset is relative to today so the schedule always has past, current,
	// and upcoming bookings to look at.
	type apptSeed struct {
		dayOffset int
		start     string
		duration  int
		client    string
		category  string
		price     int
		status    string
		notes     string
		location  string
	}
	seeds := []apptSeed{
		{-7, "09:00", 90, "Sarah Chen", appointment.CategoryLash, 12000, appointment.StatusCompleted, "Full set, cat-eye style. **Patch test done** last visit.", "Lash room"},
		{-7, "13:00", 60, "Emily Rodriguez", appointment.CategoryConsulting, 5000, appointment.StatusCompleted, "", "Front desk"},
		{-6, "10:30", 45, "Tane Patel", appointment.CategoryJewelry, 6500, appointment.StatusNoShow, "Second no-show this month.", "Jewelry bench"},
		{-5, "11:00", 120, "Aroha Williams", appointment.CategoryCrochet, 9000, appointment.StatusCompleted, "Custom cardigan fitting.", "Studio floor"},
		{-3, "09:30", 75, "Mika Tanaka", appointment.CategoryLash, 9500, appointment.StatusCompleted, "Refill. Sensitive to standard adhesive — *use sensitive glue*.", "Lash room"},
		{-2, "14:00", 60, "James Mitchell", appointment.CategoryJewelry, 8000, appointment.StatusCancelled, "Client rescheduled for next month.", "Jewelry bench"},
		{-1, "16:00", 30, "Ruby Mackenzie", appointment.CategoryConsulting, 0, appointment.StatusCompleted, "Free intro consult.", "Front desk"},
		{0, "09:00", 90, "Mia Harper", appointment.CategoryLash, 12000, appointment.StatusInProgress, "Volume set.", "Lash room"},
		{0, "11:30", 60, "Josie Park", appointment.CategoryJewelry, 7500, appointment.StatusConfirmed, "Permanent bracelet, 14k gold.", "Jewelry bench"},
		{0, "14:00", 45, "Dave Thompson", appointment.CategoryConsulting, 5000, appointment.StatusPending, "", "Front desk"},
		{0, "17:30", 90, "Ngaire Henare", appointment.CategoryCrochet, 8500, appointment.StatusConfirmed, "Baby blanket commission, colour check.", "Studio floor"},
		{1, "08:30", 75, "Sarah Chen", appointment.CategoryLash, 9500, appointment.StatusConfirmed, "Refill.", "Lash room"},
		{1, "10:00", 60, "Liam O'Brien", appointment.CategoryJewelry, 8000, appointment.StatusPending, "Matching anklets with partner.", "Jewelry bench"},
		{2, "13:00", 120, "Aroha Williams", appointment.CategoryCrochet, 9000, appointment.StatusConfirmed, "Cardigan final fitting.", "Studio floor"},
		{3, "09:00", 60, "Finn Mackenzie", appointment.CategoryConsulting, 5000, appointment.StatusPending, "", "Front desk"},
		{4, "15:30", 90, "Emily Rodriguez", appointment.CategoryLash, 12000, appointment.StatusConfirmed, "First full set. **Needs patch test** on arrival.", "Lash room"},
		{7, "10:00", 45, "Tane Patel", appointment.CategoryJewelry, 6500, appointment.StatusPending, "Rebooked after no-show.", "Jewelry bench"},
		{8, "11:00", 60, "Mia Harper", appointment.CategoryConsulting, 5000, appointment.StatusPending, "Rewards-program walkthrough.", "Front desk"},
	}

	for _, s := range seeds {
		a := appointment.Appointment{
			ID:              uuid.New().String(),
			ClientName:      s.client,
			Category:        s.category,
			Date:            timegrid.FormatDate(now.AddDate(0, 0, s.dayOffset)),
			StartTime:       s.start,
			DurationMinutes: s.duration,
			PriceCents:      s.price,
			Status:          s.status,
			Notes:           s.notes,
			Location:        s.location,
		}
		if err := deps.AppointmentStore.Save(ctx, a); err != nil {
			return fmt.Errorf("seed appointment for %s: %w", s.client, err)
		}
	}

	slog.Info("seed_event", "event", "appointments_seeded", "count", len(seeds))
	return nil
}
