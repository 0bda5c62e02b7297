package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/csrf"

	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/application/orchestrators"
	"siuportal/internal/application/projections"
)

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// Already logged in, nothing to do here
		if middleware.SessionFromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}

		outcome, err := orchestrators.ExecuteLogin(r.Context(), input, orchestrators.LoginDeps{
			Backend:  deps.Backend,
			Sessions: deps.Sessions,
		})
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		middleware.SetSessionCookie(w, outcome.RecordID, deps.SessionTTL)
		if outcome.Session.IsAdmin() {
			http.Redirect(w, r, "/admin/pendaftar", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleRegister handles GET (form) and POST (create account) for /register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if middleware.SessionFromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "register.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.RegisterAccountInput{
			Name:            r.FormValue("Name"),
			StudentID:       r.FormValue("StudentID"),
			Email:           r.FormValue("Email"),
			Faculty:         r.FormValue("Faculty"),
			Password:        r.FormValue("Password"),
			ConfirmPassword: r.FormValue("ConfirmPassword"),
		}

		err := orchestrators.ExecuteRegisterAccount(r.Context(), input, orchestrators.RegisterAccountDeps{
			Backend: deps.Backend,
		})
		if err != nil {
			renderTemplate(w, r, "register.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
				"Form":      r.Form,
			})
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleForgotPassword handles GET (form) and POST for /forgot-password.
// The response never reveals whether the address exists.
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "forgot_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.ForgotPasswordInput{Email: r.FormValue("Email")}
		if err := orchestrators.ExecuteForgotPassword(r.Context(), input, orchestrators.ForgotPasswordDeps{
			Backend: deps.Backend,
		}); err != nil {
			renderTemplate(w, r, "forgot_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Error":     err.Error(),
			})
			return
		}

		renderTemplate(w, r, "forgot_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Sent":      true,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.LogoutInput{RecordID: middleware.SessionCookieID(r)}
	if err := orchestrators.ExecuteLogout(r.Context(), input, orchestrators.LogoutDeps{
		Sessions: deps.Sessions,
	}); err != nil {
		internalError(w, err)
		return
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleProfile handles GET /profile — the member's own page.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	result, err := projections.QueryGetProfile(r.Context(), projections.GetProfileQuery{Session: sess},
		projections.GetProfileDeps{Registrations: deps.Backend})
	if err != nil {
		backendError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_profile.html", result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
