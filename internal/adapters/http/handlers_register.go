package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/application/orchestrators"
	"siuportal/internal/domain/registration"
)

// handleSubmitRegistration handles POST /daftar — a membership or
// activity application. The gating lives in the orchestrator; this
// handler only shapes the response.
func handleSubmitRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	isHTML := isHTMLRequest(r)
	input := orchestrators.SubmitRegistrationInput{
		Session: middleware.SessionFromContext(r.Context()),
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ClubID = intParam(r, "ukm_id")
		input.ActivityID = intParam(r, "kegiatan_id")
		input.Kind = r.FormValue("type")
		input.ClubName = r.FormValue("ukm_nama")
		input.ActivityName = r.FormValue("kegiatan_nama")
	} else {
		var body struct {
			ClubID       int    `json:"ukm_id"`
			ActivityID   int    `json:"kegiatan_id"`
			Kind         string `json:"type"`
			ClubName     string `json:"ukm_nama"`
			ActivityName string `json:"kegiatan_nama"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.ClubID = body.ClubID
		input.ActivityID = body.ActivityID
		input.Kind = body.Kind
		input.ClubName = body.ClubName
		input.ActivityName = body.ActivityName
	}

	result, err := orchestrators.ExecuteSubmitRegistration(r.Context(), input, orchestrators.SubmitRegistrationDeps{
		Backend: deps.Backend,
		Email:   emailSender,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrNotLoggedIn):
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case errors.Is(err, orchestrators.ErrAlreadyRegistered),
			errors.Is(err, orchestrators.ErrMembershipRequired),
			errors.Is(err, registration.ErrInvalidKind),
			errors.Is(err, registration.ErrClubRequired),
			errors.Is(err, registration.ErrActivityRequired):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			backendError(w, r, err)
		}
		return
	}

	if isHTML {
		http.Redirect(w, r, fmt.Sprintf("/ukm?id=%d", input.ClubID), http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result.Created)
}
