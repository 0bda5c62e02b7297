package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"siuportal/internal/adapters/backend"
	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/application/projections"
	"siuportal/internal/domain/registration"
	"siuportal/internal/domain/report"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// statusLabels maps reconciled registration statuses to the labels
// shown on pages.
var statusLabels = map[string]string{
	registration.StatusPending:        "Menunggu persetujuan",
	registration.StatusAccepted:       "Diterima",
	registration.StatusRejected:       "Ditolak",
	registration.StatusNotRegistered:  "Belum terdaftar",
	registration.StatusNeedMembership: "Perlu keanggotaan UKM",
	registration.StatusCanRegister:    "Bisa mendaftar",
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// backendError maps a backend client failure onto the response. A 401
// from the backend means the stored token is no longer honoured, so
// the local session is torn down before redirecting to login.
func backendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		if id := middleware.SessionCookieID(r); id != "" && deps != nil {
			if derr := deps.Sessions.Delete(r.Context(), id); derr != nil {
				slog.Error("session_teardown_failed", "error", derr)
			}
		}
		middleware.ClearSessionCookie(w)
		slog.Info("auth_event", "event", "backend_rejected_token", "path", r.URL.Path)
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Error(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, backend.ErrNotFound):
		http.NotFound(w, r)
	default:
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			http.Error(w, apiErr.Message, apiErr.Status)
			return
		}
		internalError(w, err)
	}
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

// intParam reads an integer query or form parameter, zero when absent
// or malformed.
func intParam(r *http.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		v = r.FormValue(name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess := middleware.SessionFromContext(r.Context())
	name := ""
	if sess.User != nil {
		name = sess.User.Name
	}

	funcMap := template.FuncMap{
		"currentRole": func() string { return sess.Role },
		"currentName": func() string { return name },
		"isLoggedIn":  func() bool { return sess.Authenticated() },
		"isAdmin":     func() bool { return sess.IsAdmin() },
		"csrfToken":   func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"statusLabel": func(status string) string {
			if label, ok := statusLabels[status]; ok {
				return label
			}
			return status
		},
		"rupiah": report.FormatRupiah,
		"fmtDate": func(t time.Time) string {
			if t.IsZero() {
				return "Belum dijadwalkan"
			}
			return t.Format("2 Jan 2006")
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"seq": func(n int) []int {
			s := make([]int, n)
			for i := range s {
				s[i] = i + 1
			}
			return s
		},
		"sortHeaderArgs": func(col, label, activeSort, activeDir, search, status, kind string, perPage int) map[string]string {
			nextDir := "asc"
			if col == activeSort && activeDir == "asc" {
				nextDir = "desc"
			}
			return map[string]string{
				"Col": col, "Label": label,
				"ActiveSort": activeSort, "ActiveDir": activeDir, "NextDir": nextDir,
				"Search": search, "Status": status, "Kind": kind,
				"PerPage": fmt.Sprintf("%d", perPage),
			}
		},
		"paginationQuery": func(page int, sort, dir, search, status, kind string, perPage int) template.URL {
			q := fmt.Sprintf("page=%d", page)
			if sort != "" {
				q += "&sort=" + sort
			}
			if dir != "" {
				q += "&dir=" + dir
			}
			if search != "" {
				q += "&q=" + search
			}
			if status != "" {
				q += "&status=" + status
			}
			if kind != "" {
				q += "&type=" + kind
			}
			if perPage > 0 {
				q += fmt.Sprintf("&per_page=%d", perPage)
			}
			return template.URL(q)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleHome handles GET / — the club browse page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	query := projections.GetClubBoardQuery{Session: sess}
	result, err := projections.QueryGetClubBoard(r.Context(), query, projections.GetClubBoardDeps{
		Clubs:         deps.Backend,
		Registrations: deps.Backend,
	})
	if err != nil {
		backendError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_club_board.html", result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result.Clubs)
}

// handleClubDetail handles GET /ukm?id=N — one club's page.
func handleClubDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	clubID := intParam(r, "id")
	if clubID <= 0 {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	query := projections.GetClubDetailQuery{Session: sess, ClubID: clubID}
	result, err := projections.QueryGetClubDetail(r.Context(), query, projections.GetClubDetailDeps{
		Clubs:         deps.Backend,
		Registrations: deps.Backend,
	})
	if err != nil {
		backendError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_club_detail.html", result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleActivityBoard handles GET /kegiatan — every club's activities
// flattened into one list, soonest first.
func handleActivityBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess := middleware.SessionFromContext(r.Context())
	result, err := projections.QueryGetActivityBoard(r.Context(), projections.GetActivityBoardQuery{Session: sess},
		projections.GetActivityBoardDeps{
			Clubs:         deps.Backend,
			Registrations: deps.Backend,
		})
	if err != nil {
		backendError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_activity_board.html", result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result.Activities)
}

// handleCalendar handles GET /kalender?year=YYYY&month=M. Defaults to
// the current month.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	now := timeNow()
	year := intParam(r, "year")
	month := intParam(r, "month")
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		month = int(now.Month())
	}

	query := projections.GetCalendarQuery{Year: year, Month: time.Month(month)}
	result, err := projections.QueryGetCalendar(r.Context(), query, projections.GetCalendarDeps{
		Clubs: deps.Backend,
	})
	if err != nil {
		backendError(w, r, err)
		return
	}

	prev := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	next := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_calendar.html", map[string]any{
			"Calendar":  result,
			"PrevYear":  prev.Year(),
			"PrevMonth": int(prev.Month()),
			"NextYear":  next.Year(),
			"NextMonth": int(next.Month()),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleReports handles GET /laporan?ukm_id=N — the public
// accountability page. A missing ukm_id shows every club.
func handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := projections.GetReportSummaryQuery{ClubID: intParam(r, "ukm_id")}
	result, err := projections.QueryGetReportSummary(r.Context(), query, projections.GetReportSummaryDeps{
		Clubs: deps.Backend,
	})
	if err != nil {
		backendError(w, r, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "get_report_summary.html", result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
