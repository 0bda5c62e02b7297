package web

import (
	"net/http"

	"siuportal/internal/adapters/http/middleware"
)

// registerRoutes attaches every handler to the mux. Public pages stay
// open, member pages go through RequireAuth and the admin surface
// through RequireAdmin.
func registerRoutes(mux *http.ServeMux) {
	// Public pages
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/ukm", handleClubDetail)
	mux.HandleFunc("/kegiatan", handleActivityBoard)
	mux.HandleFunc("/kalender", handleCalendar)
	mux.HandleFunc("/laporan", handleReports)

	// Auth
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/register", handleRegister)
	mux.HandleFunc("/forgot-password", handleForgotPassword)
	mux.HandleFunc("/logout", handleLogout)

	// Member pages
	mux.Handle("/profile", middleware.RequireAuth(http.HandlerFunc(handleProfile)))
	mux.Handle("/daftar", middleware.RequireAuth(http.HandlerFunc(handleSubmitRegistration)))

	// Admin surface
	mux.Handle("/admin/pendaftar", middleware.RequireAdmin(http.HandlerFunc(handleAdminRegistrations)))
	mux.Handle("/admin/pendaftar/decide", middleware.RequireAdmin(http.HandlerFunc(handleAdminRequestDecision)))
	mux.Handle("/admin/confirm", middleware.RequireAdmin(http.HandlerFunc(handleAdminConfirm)))
	mux.Handle("/admin/confirm/cancel", middleware.RequireAdmin(http.HandlerFunc(handleAdminCancelConfirm)))
	mux.Handle("/admin/ukm", middleware.RequireAdmin(http.HandlerFunc(handleAdminClubs)))
	mux.Handle("/admin/ukm/delete", middleware.RequireAdmin(http.HandlerFunc(handleAdminRequestDeleteClub)))
	mux.Handle("/admin/kegiatan", middleware.RequireAdmin(http.HandlerFunc(handleAdminActivities)))
	mux.Handle("/admin/kegiatan/delete", middleware.RequireAdmin(http.HandlerFunc(handleAdminRequestDeleteActivity)))
	mux.Handle("/admin/anggota", middleware.RequireAdmin(http.HandlerFunc(handleAdminAddRosterMember)))
	mux.Handle("/admin/anggota/remove", middleware.RequireAdmin(http.HandlerFunc(handleAdminRequestRemoveMember)))
}
