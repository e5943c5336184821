package web

import (
	"errors"
	"net/http"

	"studio/internal/adapters/http/middleware"
	"studio/internal/application/orchestrators"
)

// handleLogin handles GET (form) and POST (credentials) for /login.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/schedule", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{})
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.LoginInput{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	result, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		msg := "Invalid email or password"
		if errors.Is(err, orchestrators.ErrAccountLocked) {
			msg = "Account is locked. Try again later."
		}
		if !isHTMLRequest(r) {
			http.Error(w, msg, http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		renderTemplate(w, r, "login.html", map[string]any{
			"Error": msg,
			"Email": input.Email,
		})
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Name, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	http.Redirect(w, r, "/schedule", http.StatusSeeOther)
}

// handleLogout destroys the session and clears the cookie.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("studio_session"); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// requireStaff returns the session if the caller is an admin or assistant.
// Writes the error response itself when the check fails.
func requireStaff(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return middleware.Session{}, false
	}
	if !middleware.IsStaff(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin returns the session if the caller is an admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return middleware.Session{}, false
	}
	if !middleware.IsAdmin(r.Context()) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}
