package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/csrf"

	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/application/listutil"
	"siuportal/internal/application/orchestrators"
	"siuportal/internal/application/projections"
	"siuportal/internal/domain/registration"
)

// handleAdminRegistrations handles GET /admin/pendaftar — the approval
// table with search, filtering, sorting and pagination.
func handleAdminRegistrations(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	lp := listutil.ParseListParams(r.URL.Query(),
		projections.AdminRegistrationsSortColumns,
		projections.AdminRegistrationsFilterKeys,
	)

	result, err := projections.QueryGetAdminRegistrations(r.Context(),
		projections.GetAdminRegistrationsQuery{Session: sess, Params: lp},
		projections.GetAdminRegistrationsDeps{Registrations: deps.Backend})
	if err != nil {
		backendError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_admin_registrations.html", map[string]any{
			"Rows":           result.Rows,
			"PageInfo":       result.PageInfo,
			"PendingCount":   result.PendingCount,
			"Sort":           lp.Sort,
			"Dir":            lp.Dir,
			"Search":         lp.Search,
			"Status":         lp.Filters["status"],
			"Kind":           lp.Filters["type"],
			"ClubID":         lp.Filters["ukm_id"],
			"PerPageOptions": listutil.PerPageOptions,
			"HasFilters":     lp.Search != "" || lp.Filters["status"] != "" || lp.Filters["type"] != "" || lp.Filters["ukm_id"] != "",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleAdminRequestDecision handles POST /admin/pendaftar/decide —
// the first click of an accept or reject. Nothing touches the backend
// here; the decision only lands after /admin/confirm.
func handleAdminRequestDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	id := intParam(r, "id")
	if id <= 0 {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	var kind string
	switch r.FormValue("decision") {
	case registration.StatusAccepted:
		kind = orchestrators.ActionAcceptRegistration
	case registration.StatusRejected:
		kind = orchestrators.ActionRejectRegistration
	default:
		http.Error(w, registration.ErrInvalidDecision.Error(), http.StatusBadRequest)
		return
	}

	summary := r.FormValue("summary")
	if summary == "" {
		summary = fmt.Sprintf("pendaftar #%d", id)
	}

	action := deps.Confirms.RequestAction(kind, id, summary)
	renderConfirmPage(w, r, action)
}

// renderConfirmPage shows the second-click page for a pending action.
func renderConfirmPage(w http.ResponseWriter, r *http.Request, action orchestrators.PendingAction) {
	if isHTMLRequest(r) {
		renderTemplate(w, r, "confirm_action.html", map[string]any{
			"Action":    action,
			"CSRFToken": csrf.Token(r),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"confirmation_id": action.ID,
		"kind":            action.Kind,
		"summary":         action.Summary,
	})
}

// handleAdminConfirm handles GET (re-render) and POST (execute) for
// /admin/confirm. The POST claims the pending action exactly once and
// dispatches on its kind.
func handleAdminConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		action, err := deps.Confirms.Peek(r.URL.Query().Get("id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		renderConfirmPage(w, r, action)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	confirmationID := r.FormValue("confirmation_id")
	action, err := deps.Confirms.Peek(confirmationID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusGone)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	var target string

	switch action.Kind {
	case orchestrators.ActionAcceptRegistration, orchestrators.ActionRejectRegistration:
		err = orchestrators.ExecuteDecideRegistration(r.Context(), orchestrators.DecideRegistrationInput{
			Session:        sess,
			ConfirmationID: confirmationID,
		}, orchestrators.DecideRegistrationDeps{
			Backend:  deps.Backend,
			Confirms: deps.Confirms,
			Email:    emailSender,
		})
		target = "/admin/pendaftar"
	case orchestrators.ActionDeleteClub:
		err = orchestrators.ExecuteDeleteClub(r.Context(), orchestrators.DeleteClubInput{
			Session:        sess,
			ConfirmationID: confirmationID,
		}, orchestrators.DeleteClubDeps{Backend: deps.Backend, Confirms: deps.Confirms})
		target = "/"
	case orchestrators.ActionDeleteActivity:
		err = orchestrators.ExecuteDeleteActivity(r.Context(), orchestrators.DeleteActivityInput{
			Session:        sess,
			ConfirmationID: confirmationID,
		}, orchestrators.DeleteActivityDeps{Backend: deps.Backend, Confirms: deps.Confirms})
		target = "/kegiatan"
	case orchestrators.ActionRemoveMember:
		err = orchestrators.ExecuteRemoveRosterMember(r.Context(), orchestrators.RemoveRosterMemberInput{
			Session:        sess,
			ConfirmationID: confirmationID,
		}, orchestrators.RosterDeps{Backend: deps.Backend, Confirms: deps.Confirms})
		target = "/"
	default:
		http.Error(w, orchestrators.ErrConfirmationExpired.Error(), http.StatusGone)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrConfirmationExpired):
			http.Error(w, err.Error(), http.StatusGone)
		case errors.Is(err, registration.ErrAlreadyDecided):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, orchestrators.ErrAdminRequired):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			backendError(w, r, err)
		}
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminCancelConfirm handles POST /admin/confirm/cancel.
// Cancelling an unknown or expired id is fine.
func handleAdminCancelConfirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	deps.Confirms.Cancel(r.FormValue("confirmation_id"))

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/admin/pendaftar", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
