package projections

import (
	"time"

	"studio/internal/domain/appointment"
	"studio/internal/domain/timegrid"
)

// WeekBlock is one positioned appointment card in the week grid. TopPx and
// HeightPx place the block within its day column; out-of-window start times
// produce offsets outside [0, window] and are rendered as-is.
type WeekBlock struct {
	Appointment appointment.Appointment
	TopPx       float64
	HeightPx    float64
	TimeLabel   string // "9am – 10am"
}

// WeekDayColumn is one day column of the week view.
type WeekDayColumn struct {
	Date    time.Time
	Key     string // YYYY-MM-DD
	Label   string // "Mon 10"
	IsToday bool
	Blocks  []WeekBlock
}

// WeekView is the full week-grid view model.
type WeekView struct {
	Days       [7]WeekDayColumn
	HourLabels []string // "8am" .. "8pm"
	RangeLabel string   // "Jun 9 – Jun 15, 2024"
	WindowPx   float64  // column height for the 08:00–20:00 window
}

// BuildWeekView lays out appointments on the week containing anchor.
// PRE: appts are sorted chronologically (SortAppointments)
// POST: each day column holds that date's appointments positioned by start
// time and duration; cancelled appointments are excluded from the grid
func BuildWeekView(appts []appointment.Appointment, anchor, today time.Time) WeekView {
	days := timegrid.WeekDays(anchor)

	view := WeekView{
		WindowPx:   timegrid.DurationToHeightPx(timegrid.DayEndMinutes - timegrid.DayStartMinutes),
		RangeLabel: weekRangeLabel(days),
	}
	for _, mark := range timegrid.HourMarks() {
		view.HourLabels = append(view.HourLabels, timegrid.Format12Hour(mark))
	}

	byDate := make(map[string][]appointment.Appointment)
	for _, a := range appts {
		if a.Status == appointment.StatusCancelled {
			continue
		}
		byDate[a.Date] = append(byDate[a.Date], a)
	}

	for i, d := range days {
		key := timegrid.FormatDate(d)
		col := WeekDayColumn{
			Date:    d,
			Key:     key,
			Label:   d.Format("Mon 2"),
			IsToday: timegrid.SameDay(d, today),
		}
		for _, a := range byDate[key] {
			start := timegrid.TimeToMinutes(a.StartTime)
			col.Blocks = append(col.Blocks, WeekBlock{
				Appointment: a,
				TopPx:       timegrid.MinutesToOffsetPx(start),
				HeightPx:    timegrid.DurationToHeightPx(a.DurationMinutes),
				TimeLabel:   blockTimeLabel(a),
			})
		}
		view.Days[i] = col
	}
	return view
}

// weekRangeLabel renders "Jun 9 – Jun 15, 2024" (or with both years when the
// week spans a year boundary).
func weekRangeLabel(days [7]time.Time) string {
	first, last := days[0], days[6]
	if first.Year() != last.Year() {
		return first.Format("Jan 2, 2006") + " – " + last.Format("Jan 2, 2006")
	}
	return first.Format("Jan 2") + " – " + last.Format("Jan 2, 2006")
}

// blockTimeLabel renders "9am – 10:30am" for a card.
func blockTimeLabel(a appointment.Appointment) string {
	end := a.EndMinutes()
	endLabel := timegrid.Format12Hour(clockFromMinutes(end))
	return timegrid.Format12Hour(a.StartTime) + " – " + endLabel
}

// clockFromMinutes converts minutes-after-midnight back to "HH:MM", wrapping
// past midnight.
func clockFromMinutes(m int) string {
	m = ((m % (24 * 60)) + 24*60) % (24 * 60)
	hh := m / 60
	mm := m % 60
	return string([]byte{byte('0' + hh/10), byte('0' + hh%10), ':', byte('0' + mm/10), byte('0' + mm%10)})
}
