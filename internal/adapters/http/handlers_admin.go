package web

import (
	"encoding/json"
	"net/http"
	"time"

	"studio/internal/application/listutil"
	"studio/internal/application/projections"
	"studio/internal/domain/appointment"
)

// handleAdminAppointments renders the admin bookings table with filtering,
// search, and pagination for GET /admin/appointments.
func handleAdminAppointments(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	lp := listutil.ParseListParams(r.URL.Query(), []string{"category", "status"})

	result, err := projections.QueryGetAdminAppointments(r.Context(),
		projections.GetAdminAppointmentsQuery{Params: lp},
		projections.GetAdminAppointmentsDeps{AppointmentStore: stores.AppointmentStore},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_appointments.html", map[string]any{
			"Rows":           result.Rows,
			"PageInfo":       result.PageInfo,
			"Search":         lp.Search,
			"Category":       lp.Filters["category"],
			"Status":         lp.Filters["status"],
			"Categories":     appointment.ValidCategories,
			"Statuses":       appointment.ValidStatuses,
			"PerPageOptions": listutil.PerPageOptions,
			"HasFilters":     lp.Search != "" || lp.Filters["category"] != "" || lp.Filters["status"] != "",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleAdminSubmissions lists completed onboarding submissions for
// GET /admin/submissions.
func handleAdminSubmissions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	subs, err := stores.OnboardingStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_submissions.html", map[string]any{
			"Submissions": subs,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subs)
}

// handleAdminPerf renders the performance dashboard for GET /admin/perf.
// Snapshot aggregation is expensive, so this page is admin-only and on-demand.
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusServiceUnavailable)
		return
	}

	snap := perfCollector.Snapshot(timeNow().Add(-15*time.Minute), 20)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "admin_perf.html", map[string]any{
			"Snapshot": snap,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}
