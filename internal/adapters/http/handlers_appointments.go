package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"studio/internal/adapters/http/middleware"
	"studio/internal/application/orchestrators"
	"studio/internal/domain/appointment"
)

// handleCreateAppointment handles POST /appointments from the booking form or
// the JSON API.
func handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.CreateAppointmentInput{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ClientName = r.FormValue("client_name")
		input.Category = r.FormValue("category")
		input.Date = r.FormValue("date")
		input.StartTime = r.FormValue("start_time")
		input.DurationMinutes, _ = strconv.Atoi(r.FormValue("duration_minutes"))
		input.PriceCents, _ = strconv.Atoi(r.FormValue("price_cents"))
		input.Status = r.FormValue("status")
		input.Notes = r.FormValue("notes")
		input.Location = r.FormValue("location")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	created, err := orchestrators.ExecuteCreateAppointment(r.Context(), input, orchestrators.CreateAppointmentDeps{
		AppointmentStore: stores.AppointmentStore,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/schedule", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// handleAppointmentStatus handles POST /appointments/{id}/status. Moving to
// cancelled routes through the cancel path so the double-cancel guard applies.
func handleAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	input := orchestrators.UpdateAppointmentStatusInput{AppointmentID: r.PathValue("id")}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Status = r.FormValue("status")
	} else {
		var body struct {
			Status string
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.Status = body.Status
	}

	updated, err := orchestrators.ExecuteUpdateAppointmentStatus(r.Context(), input, orchestrators.CreateAppointmentDeps{
		AppointmentStore: stores.AppointmentStore,
	})
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, appointment.ErrAlreadyCancelled):
			status = http.StatusConflict
		case errors.Is(err, orchestrators.ErrUnknownStatus):
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/appointments/"+updated.ID, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// handleCancelAppointment handles POST /appointments/{id}/cancel.
func handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireStaff(w, r); !ok {
		return
	}

	cancelled, err := orchestrators.ExecuteCancelAppointment(r.Context(),
		orchestrators.CancelAppointmentInput{AppointmentID: r.PathValue("id")},
		orchestrators.CancelAppointmentDeps{AppointmentStore: stores.AppointmentStore},
	)
	if err != nil {
		if errors.Is(err, appointment.ErrAlreadyCancelled) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/schedule", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cancelled)
}

// handleShareBookingLink handles POST /share-booking-link: emails the studio's
// public booking link to a contact. A staff session supplies the sender name
// when present; the onboarding done page posts here before any session exists,
// so an anonymous caller may name the sender instead. CSRF and the rate
// limiter still gate the anonymous path.
func handleShareBookingLink(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.ShareBookingLinkInput{}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		input.SenderName = sess.Name
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.RecipientEmail = r.FormValue("recipient_email")
		input.RecipientName = r.FormValue("recipient_name")
		input.BookingSlug = r.FormValue("booking_slug")
		if input.SenderName == "" {
			input.SenderName = r.FormValue("sender_name")
		}
	} else {
		var body struct {
			RecipientEmail string
			RecipientName  string
			BookingSlug    string
			SenderName     string
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.RecipientEmail = body.RecipientEmail
		input.RecipientName = body.RecipientName
		input.BookingSlug = body.BookingSlug
		if input.SenderName == "" {
			input.SenderName = body.SenderName
		}
	}

	err := orchestrators.ExecuteShareBookingLink(r.Context(), input, orchestrators.ShareBookingLinkDeps{
		EmailSender: emailSender,
		FromAddress: emailFromAddress,
		ReplyTo:     emailReplyTo,
		BaseURL:     BaseURL,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrNoRecipient) || errors.Is(err, orchestrators.ErrNoBookingSlug) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/schedule", http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "sent"})
}
