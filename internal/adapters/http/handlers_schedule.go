package web

import (
	"encoding/json"
	"net/http"
	"time"

	"studio/internal/application/projections"
	"studio/internal/domain/timegrid"
)

// Schedule view names.
const (
	viewList   = "list"
	viewWeek   = "week"
	viewMonth  = "month"
	viewAgenda = "agenda"
)

func validScheduleView(v string) bool {
	switch v {
	case viewList, viewWeek, viewMonth, viewAgenda:
		return true
	}
	return false
}

// scheduleNav carries the toolbar navigation state for the schedule page.
type scheduleNav struct {
	View     string
	Cursor   string // YYYY-MM-DD
	PrevURL  string
	NextURL  string
	TodayURL string
	Label    string // range heading for the active view
}

func scheduleURL(view, cursor string) string {
	return "/schedule?view=" + view + "&cursor=" + cursor
}

// buildScheduleNav computes prev/next/today cursors for the active view.
// The list view has no cursor; week steps by 7 days, month and agenda by one
// month.
func buildScheduleNav(view string, cursor, today time.Time) scheduleNav {
	nav := scheduleNav{View: view, Cursor: timegrid.FormatDate(cursor)}
	nav.TodayURL = scheduleURL(view, timegrid.FormatDate(today))
	switch view {
	case viewWeek:
		nav.PrevURL = scheduleURL(view, timegrid.FormatDate(timegrid.AddWeeks(cursor, -1)))
		nav.NextURL = scheduleURL(view, timegrid.FormatDate(timegrid.AddWeeks(cursor, 1)))
	case viewMonth, viewAgenda:
		nav.PrevURL = scheduleURL(view, timegrid.FormatDate(timegrid.AddMonths(cursor, -1)))
		nav.NextURL = scheduleURL(view, timegrid.FormatDate(timegrid.AddMonths(cursor, 1)))
	}
	return nav
}

// handleSchedule renders the scheduling dashboard: summary stats plus one of
// the list, week, month, or agenda views selected by ?view= with ?cursor=
// anchoring the calendar views.
func handleSchedule(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	view := r.URL.Query().Get("view")
	if !validScheduleView(view) {
		view = viewList
	}

	now := timeNow()
	cursor := now
	if c := r.URL.Query().Get("cursor"); c != "" {
		if parsed, err := timegrid.ParseDate(c); err == nil {
			cursor = parsed
		}
	}

	data, err := projections.QueryGetScheduleData(r.Context(), now, projections.GetScheduleDataDeps{
		AppointmentStore: stores.AppointmentStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	nav := buildScheduleNav(view, cursor, now)
	page := map[string]any{
		"View":  view,
		"Nav":   nav,
		"Stats": data.Stats,
	}

	switch view {
	case viewWeek:
		wv := projections.BuildWeekView(data.Appointments, cursor, now)
		nav.Label = wv.RangeLabel
		page["Nav"] = nav
		page["Week"] = wv
	case viewMonth:
		mv := projections.BuildMonthView(data.Appointments, cursor, now)
		nav.Label = mv.Label
		page["Nav"] = nav
		page["Month"] = mv
	case viewAgenda:
		nav.Label = cursor.Format("January 2006")
		page["Nav"] = nav
		page["Agenda"] = projections.BuildAgendaView(data.Appointments, cursor, now)
	default:
		page["Groups"] = projections.BuildListView(data.Appointments, now)
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "schedule.html", page)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

// handleAppointmentDetail renders the read-only booking detail for
// GET /appointments/{id}.
func handleAppointmentDetail(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	id := r.PathValue("id")
	detail, err := projections.QueryGetAppointmentDetail(r.Context(), id, projections.GetAppointmentDetailDeps{
		AppointmentStore: stores.AppointmentStore,
	})
	if err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "appointment_detail.html", map[string]any{
			"Detail": detail,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(detail)
}
