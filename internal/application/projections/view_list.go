package projections

import (
	"time"

	"studio/internal/domain/appointment"
	"studio/internal/domain/timegrid"
)

// ListGroup is one day's worth of appointments in the list view.
type ListGroup struct {
	Key          string // YYYY-MM-DD
	Label        string // "Today", "Tomorrow", or "Monday, Jun 10"
	Appointments []appointment.Appointment
}

// BuildListView groups the full snapshot by day, chronologically. Unlike the
// calendar views the list has no cursor; it shows everything.
// PRE: appts are sorted chronologically (SortAppointments)
// POST: groups appear in date order; appointments keep their sorted order
func BuildListView(appts []appointment.Appointment, today time.Time) []ListGroup {
	var groups []ListGroup
	index := make(map[string]int)

	for _, a := range appts {
		i, ok := index[a.Date]
		if !ok {
			i = len(groups)
			index[a.Date] = i
			groups = append(groups, ListGroup{Key: a.Date, Label: dayLabel(a.Date, today)})
		}
		groups[i].Appointments = append(groups[i].Appointments, a)
	}
	return groups
}

// AgendaGroup is one day in the agenda view.
type AgendaGroup struct {
	Key          string
	Label        string
	Appointments []appointment.Appointment
}

// BuildAgendaView groups the cursor month's appointments by date, skipping
// empty days. Cancelled appointments stay visible here (struck through in the
// UI) so the agenda reads as a faithful log of the month.
// PRE: appts are sorted chronologically (SortAppointments)
func BuildAgendaView(appts []appointment.Appointment, cursor, today time.Time) []AgendaGroup {
	var groups []AgendaGroup
	index := make(map[string]int)

	for _, a := range appts {
		d, err := timegrid.ParseDate(a.Date)
		if err != nil || d.Year() != cursor.Year() || d.Month() != cursor.Month() {
			continue
		}
		i, ok := index[a.Date]
		if !ok {
			i = len(groups)
			index[a.Date] = i
			groups = append(groups, AgendaGroup{Key: a.Date, Label: dayLabel(a.Date, today)})
		}
		groups[i].Appointments = append(groups[i].Appointments, a)
	}
	return groups
}

// dayLabel renders a friendly heading for a date key relative to today.
func dayLabel(key string, today time.Time) string {
	d, err := timegrid.ParseDate(key)
	if err != nil {
		return key
	}
	switch {
	case timegrid.SameDay(d, today):
		return "Today"
	case timegrid.SameDay(d, today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return d.Format("Monday, Jan 2")
	}
}
