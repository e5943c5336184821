package projections

import (
	"context"
	"sort"
	"time"

	"studio/internal/domain/appointment"
	"studio/internal/domain/timegrid"
)

// ScheduleAppointmentStore defines the store interface needed by the schedule projections.
type ScheduleAppointmentStore interface {
	List(ctx context.Context) ([]appointment.Appointment, error)
}

// ScheduleStats carries the summary-card numbers. They are computed once from
// the appointment snapshot at page load and deliberately do not follow the
// navigation cursor.
type ScheduleStats struct {
	TodayCount        int
	WeekCount         int
	TodayRevenueCents int
	WeekRevenueCents  int
}

// ScheduleData is the schedule page's inbound snapshot: the flat appointment
// list, summary stats, and today's date key.
type ScheduleData struct {
	Appointments []appointment.Appointment
	Stats        ScheduleStats
	TodayKey     string // YYYY-MM-DD
}

// GetScheduleDataDeps holds dependencies for the snapshot projection.
type GetScheduleDataDeps struct {
	AppointmentStore ScheduleAppointmentStore
}

// QueryGetScheduleData loads the appointment snapshot and computes summary stats.
// Cancelled appointments count toward nothing; no-shows count toward volume but
// not revenue.
// PRE: now is the caller's local time
// POST: Appointments are sorted by date then start time
func QueryGetScheduleData(ctx context.Context, now time.Time, deps GetScheduleDataDeps) (ScheduleData, error) {
	appts, err := deps.AppointmentStore.List(ctx)
	if err != nil {
		return ScheduleData{}, err
	}
	SortAppointments(appts)

	todayKey := timegrid.FormatDate(now)
	week := timegrid.WeekDays(now)
	weekKeys := make(map[string]bool, 7)
	for _, d := range week {
		weekKeys[timegrid.FormatDate(d)] = true
	}

	var stats ScheduleStats
	for _, a := range appts {
		if a.Status == appointment.StatusCancelled {
			continue
		}
		earns := a.Status != appointment.StatusNoShow
		if a.Date == todayKey {
			stats.TodayCount++
			if earns {
				stats.TodayRevenueCents += a.PriceCents
			}
		}
		if weekKeys[a.Date] {
			stats.WeekCount++
			if earns {
				stats.WeekRevenueCents += a.PriceCents
			}
		}
	}

	return ScheduleData{Appointments: appts, Stats: stats, TodayKey: todayKey}, nil
}

// SortAppointments orders appointments chronologically by date then start time.
// The date and time string formats sort correctly as plain strings.
func SortAppointments(appts []appointment.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].StartTime < appts[j].StartTime
	})
}
