package projections

import (
	"time"

	"studio/internal/domain/appointment"
	"studio/internal/domain/timegrid"
)

// MonthCell is one day cell in the month grid. WeekURL is the navigation
// target for a cell click: the week view anchored at this date.
type MonthCell struct {
	Date         time.Time
	Key          string // YYYY-MM-DD
	Day          int
	InMonth      bool
	IsToday      bool
	Appointments []appointment.Appointment
	WeekURL      string
}

// MonthView is the month-grid view model: complete weeks padded with
// adjacent-month days.
type MonthView struct {
	Cells []MonthCell
	Label string // "June 2024"
}

// BuildMonthView groups appointments onto the calendar grid for the cursor's
// month.
// POST: len(Cells) is a multiple of 7; every cell carries its week-view link
func BuildMonthView(appts []appointment.Appointment, cursor, today time.Time) MonthView {
	byDate := make(map[string][]appointment.Appointment)
	for _, a := range appts {
		if a.Status == appointment.StatusCancelled {
			continue
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	view := MonthView{Label: cursor.Format("January 2006")}
	for _, d := range timegrid.MonthGrid(cursor.Year(), cursor.Month()) {
		key := timegrid.FormatDate(d)
		view.Cells = append(view.Cells, MonthCell{
			Date:         d,
			Key:          key,
			Day:          d.Day(),
			InMonth:      d.Month() == cursor.Month(),
			IsToday:      timegrid.SameDay(d, today),
			Appointments: byDate[key],
			WeekURL:      "/schedule?view=week&cursor=" + key,
		})
	}
	return view
}
