package projections

import (
	"context"
	"fmt"

	"studio/internal/domain/appointment"
	"studio/internal/domain/timegrid"
)

// DetailAppointmentStore defines the store interface needed by the detail projection.
type DetailAppointmentStore interface {
	GetByID(ctx context.Context, id string) (appointment.Appointment, error)
}

// AppointmentDetail is the read-only detail dialog's view model.
type AppointmentDetail struct {
	Appointment   appointment.Appointment
	Initials      string
	CategoryStyle appointment.Style
	StatusStyle   appointment.Style
	TimeLabel     string // "Mon, Jun 10 · 9am – 10am"
	PriceLabel    string // "$85.00"
}

// GetAppointmentDetailDeps holds dependencies for the detail projection.
type GetAppointmentDetailDeps struct {
	AppointmentStore DetailAppointmentStore
}

// QueryGetAppointmentDetail loads one appointment and derives its display labels.
// PRE: id is non-empty
// POST: returns the detail view model or the store's not-found error
func QueryGetAppointmentDetail(ctx context.Context, id string, deps GetAppointmentDetailDeps) (AppointmentDetail, error) {
	a, err := deps.AppointmentStore.GetByID(ctx, id)
	if err != nil {
		return AppointmentDetail{}, err
	}

	timeLabel := blockTimeLabel(a)
	if d, err := timegrid.ParseDate(a.Date); err == nil {
		timeLabel = d.Format("Mon, Jan 2") + " · " + timeLabel
	}

	return AppointmentDetail{
		Appointment:   a,
		Initials:      a.Initials(),
		CategoryStyle: appointment.CategoryStyles[a.Category],
		StatusStyle:   appointment.StatusStyles[a.Status],
		TimeLabel:     timeLabel,
		PriceLabel:    FormatPrice(a.PriceCents),
	}, nil
}

// FormatPrice renders cents as "$12.50", dropping cents when whole dollars.
func FormatPrice(cents int) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
