package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"

	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/application/orchestrators"
	"siuportal/internal/domain/club"
)

// handleAdminClubs handles GET (form) and POST (create or update) for
// /admin/ukm. A zero or missing id means create.
func handleAdminClubs(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	if r.Method == "GET" {
		data := map[string]any{"CSRFToken": csrf.Token(r)}
		if id := intParam(r, "id"); id > 0 {
			c, err := deps.Backend.GetClub(r.Context(), id)
			if err != nil {
				backendError(w, r, err)
				return
			}
			data["Club"] = c
		}
		renderTemplate(w, r, "admin_club_form.html", data)
		return
	}

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	input := orchestrators.SaveClubInput{Session: sess}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.Club = club.Club{
			ID:          intParam(r, "id"),
			Name:        r.FormValue("Name"),
			Description: r.FormValue("Description"),
			ImageURL:    r.FormValue("ImageURL"),
			ChatGroup:   r.FormValue("ChatGroup"),
		}
	} else {
		if err := strictDecode(r, &input.Club); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
	}

	saved, err := orchestrators.ExecuteSaveClub(r.Context(), input, orchestrators.SaveClubDeps{
		Backend: deps.Backend,
	})
	if err != nil {
		adminActionError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, fmt.Sprintf("/ukm?id=%d", saved.ID), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

// handleAdminRequestDeleteClub handles POST /admin/ukm/delete — first
// click only; the club survives until /admin/confirm.
func handleAdminRequestDeleteClub(w http.ResponseWriter, r *http.Request) {
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

	summary := r.FormValue("summary")
	if summary == "" {
		summary = fmt.Sprintf("hapus UKM #%d", id)
	}
	action := deps.Confirms.RequestAction(orchestrators.ActionDeleteClub, id, summary)
	renderConfirmPage(w, r, action)
}

// handleAdminActivities handles POST /admin/kegiatan — create or
// update a kegiatan under a club. A zero id means create.
func handleAdminActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	input := orchestrators.SaveActivityInput{Session: sess}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ClubID = intParam(r, "ukm_id")
		input.Activity = club.Activity{
			ID:          intParam(r, "id"),
			Name:        r.FormValue("Name"),
			Description: r.FormValue("Description"),
			ChatGroup:   r.FormValue("ChatGroup"),
		}
		if d := r.FormValue("Date"); d != "" {
			parsed, err := time.Parse("2006-01-02", d)
			if err != nil {
				http.Error(w, "Date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			input.Activity.Date = parsed
		}
	} else {
		var body struct {
			ClubID int `json:"ukm_id"`
			club.Activity
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.ClubID = body.ClubID
		input.Activity = body.Activity
	}

	saved, err := orchestrators.ExecuteSaveActivity(r.Context(), input, orchestrators.SaveActivityDeps{
		Backend: deps.Backend,
	})
	if err != nil {
		adminActionError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, fmt.Sprintf("/ukm?id=%d", input.ClubID), http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

// handleAdminRequestDeleteActivity handles POST /admin/kegiatan/delete.
func handleAdminRequestDeleteActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	id := intParam(r, "id")
	clubID := intParam(r, "ukm_id")
	if id <= 0 || clubID <= 0 {
		http.Error(w, "id and ukm_id are required", http.StatusBadRequest)
		return
	}

	summary := r.FormValue("summary")
	if summary == "" {
		summary = fmt.Sprintf("hapus kegiatan #%d", id)
	}
	action := deps.Confirms.RequestNestedAction(orchestrators.ActionDeleteActivity, clubID, id, summary)
	renderConfirmPage(w, r, action)
}

// handleAdminAddRosterMember handles POST /admin/anggota — append one
// entry to a club's public roster.
func handleAdminAddRosterMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	input := orchestrators.AddRosterMemberInput{Session: sess}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.ClubID = intParam(r, "ukm_id")
		input.Entry = club.MemberEntry{
			Name:      r.FormValue("Name"),
			StudentID: r.FormValue("StudentID"),
			RoleTitle: r.FormValue("RoleTitle"),
		}
	} else {
		var body struct {
			ClubID int `json:"ukm_id"`
			club.MemberEntry
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.ClubID = body.ClubID
		input.Entry = body.MemberEntry
	}

	if input.ClubID <= 0 {
		http.Error(w, "ukm_id is required", http.StatusBadRequest)
		return
	}

	if err := orchestrators.ExecuteAddRosterMember(r.Context(), input, orchestrators.RosterDeps{
		Backend:  deps.Backend,
		Confirms: deps.Confirms,
	}); err != nil {
		adminActionError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, fmt.Sprintf("/ukm?id=%d", input.ClubID), http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdminRequestRemoveMember handles POST /admin/anggota/remove.
func handleAdminRequestRemoveMember(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	id := intParam(r, "id")
	clubID := intParam(r, "ukm_id")
	if id <= 0 || clubID <= 0 {
		http.Error(w, "id and ukm_id are required", http.StatusBadRequest)
		return
	}

	summary := r.FormValue("summary")
	if summary == "" {
		summary = fmt.Sprintf("keluarkan anggota #%d", id)
	}
	action := deps.Confirms.RequestNestedAction(orchestrators.ActionRemoveMember, clubID, id, summary)
	renderConfirmPage(w, r, action)
}

// adminActionError maps management failures onto the response.
// Validation errors come back 400; everything else goes through the
// shared backend mapping.
func adminActionError(w http.ResponseWriter, r *http.Request, err error) {
	switch err {
	case club.ErrNameRequired, club.ErrNameTooLong, club.ErrDescriptionRequired, club.ErrDescriptionTooLong:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case orchestrators.ErrAdminRequired:
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		backendError(w, r, err)
	}
}
