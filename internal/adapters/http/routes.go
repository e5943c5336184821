package web

import "net/http"

// registerRoutes wires every application route onto the mux. The root path
// stays with the static file server registered in NewMux.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("POST /logout", handleLogout)

	// Scheduling dashboard
	mux.HandleFunc("GET /schedule", handleSchedule)
	mux.HandleFunc("GET /appointments/{id}", handleAppointmentDetail)
	mux.HandleFunc("POST /appointments", handleCreateAppointment)
	mux.HandleFunc("POST /appointments/{id}/status", handleAppointmentStatus)
	mux.HandleFunc("POST /appointments/{id}/cancel", handleCancelAppointment)
	mux.HandleFunc("POST /share-booking-link", handleShareBookingLink)

	// Onboarding wizard (public; runs before an account exists)
	mux.HandleFunc("/onboarding", handleOnboardingStart)
	mux.HandleFunc("/onboarding/step", handleOnboardingStep)
	mux.HandleFunc("POST /onboarding/submit", handleOnboardingSubmit)

	// Admin
	mux.HandleFunc("GET /admin/appointments", handleAdminAppointments)
	mux.HandleFunc("GET /admin/submissions", handleAdminSubmissions)
	mux.HandleFunc("GET /admin/perf", handleAdminPerf)
}
