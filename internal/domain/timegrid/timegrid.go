package timegrid

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used throughout the app.
const DateLayout = "2006-01-02"

// Week-view vertical window. Appointments are laid out within 08:00–20:00;
// times outside the window are mapped linearly past the edges and are NOT
// clamped; all studio bookings are assumed to fall within business hours.
const (
	DayStartMinutes = 8 * 60  // 08:00
	DayEndMinutes   = 20 * 60 // 20:00
	PixelsPerMinute = 1.0
)

// ParseDate parses a "YYYY-MM-DD" string as a local calendar date.
// PRE: s is well-formed; malformed input returns the zero time with an error
// POST: returns midnight local time on that date
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a time as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekDays returns the 7 dates of the week containing anchor, starting Sunday.
// PRE: none
// POST: returns 7 consecutive dates; anchor falls within the returned range
func WeekDays(anchor time.Time) [7]time.Time {
	start := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	var days [7]time.Time
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// MonthGrid returns the full calendar grid for a month: every complete week
// from the Sunday on or before the 1st through the Saturday on or after the
// last day. Length is always a multiple of 7 and includes adjacent-month days.
// PRE: month is in [1, 12]
// POST: len(result) % 7 == 0; result[0] is a Sunday
func MonthGrid(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var grid []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		grid = append(grid, d)
	}
	return grid
}

// TimeToMinutes converts "HH:MM" to minutes after midnight.
// PRE: s is well-formed HH:MM; malformed input yields a garbage value, not an error
// POST: returns hours*60 + minutes
func TimeToMinutes(s string) int {
	if len(s) != 5 {
		return 0
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m
}

// MinutesToOffsetPx maps minutes-after-midnight to a vertical pixel offset in
// the week grid. 08:00 maps to 0; each minute is PixelsPerMinute tall. Values
// before 08:00 go negative and values after 20:00 overflow the column; the
// grid does not clamp them.
func MinutesToOffsetPx(minutes int) float64 {
	return float64(minutes-DayStartMinutes) * PixelsPerMinute
}

// DurationToHeightPx maps an appointment duration in minutes to a block height.
func DurationToHeightPx(minutes int) float64 {
	return float64(minutes) * PixelsPerMinute
}

// Format12Hour renders "HH:MM" in compact 12-hour form: "12am", "9am", "1:30pm".
// The leading zero is dropped and ":00" minutes are omitted.
// PRE: s is well-formed HH:MM
func Format12Hour(s string) string {
	h := TimeToMinutes(s) / 60
	m := TimeToMinutes(s) % 60

	suffix := "am"
	if h >= 12 {
		suffix = "pm"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	if m == 0 {
		return fmt.Sprintf("%d%s", display, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", display, m, suffix)
}

// HourMarks returns the "HH:MM" labels for each hour in the week-grid window,
// inclusive of both edges (08:00 through 20:00).
func HourMarks() []string {
	var marks []string
	for h := DayStartMinutes / 60; h <= DayEndMinutes/60; h++ {
		marks = append(marks, fmt.Sprintf("%02d:00", h))
	}
	return marks
}

// AddWeeks advances a cursor date by n weeks (n may be negative).
func AddWeeks(cursor time.Time, n int) time.Time {
	return cursor.AddDate(0, 0, 7*n)
}

// AddMonths advances a cursor date by n months (n may be negative).
func AddMonths(cursor time.Time, n int) time.Time {
	return cursor.AddDate(0, n, 0)
}
