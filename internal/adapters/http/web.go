package web

import (
	"crypto/rand"
	"log"
	"net/http"
	"time"

	"siuportal/internal/adapters/backend"
	"siuportal/internal/adapters/email"
	"siuportal/internal/adapters/http/middleware"
	"siuportal/internal/adapters/http/perf"
	"siuportal/internal/adapters/storage/sessionstore"
	"siuportal/internal/application/orchestrators"
)

// Deps holds the wiring for the HTTP layer. The portal keeps no club
// or registration data of its own; everything except session records
// flows through the backend client.
type Deps struct {
	Backend       *backend.Client
	Sessions      sessionstore.Store
	Confirms      *orchestrators.ConfirmationStore
	SessionTTL    time.Duration
	CSRFKey       []byte // 32 bytes; empty means generate a per-startup key
	SlowRequestMS int    // slow-request log threshold; zero means the default
}

// csrfKey returns the configured CSRF secret, or a random per-startup
// key when none was configured. Production startup validates the key
// before the mux is built.
func csrfKey(configured []byte) []byte {
	if len(configured) == 32 {
		return configured
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SIU_CSRF_KEY for production.")
	return key
}

// Global deps instance (set by NewMux)
var deps *Deps

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 20

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the sender used for courtesy notifications.
// A nil sender disables them.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the portal.
func NewMux(staticDir string, d *Deps, collector *perf.Collector) http.Handler {
	deps = d
	perfCollector = collector

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey(d.CSRFKey)),
		middleware.Auth(d.Sessions, d.SessionTTL),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, d.SlowRequestMS),
	)
}
