package main

import (
	"context"
	"database/sql"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	_ "modernc.org/sqlite"

	"siuportal/internal/adapters/backend"
	emailPkg "siuportal/internal/adapters/email"
	web "siuportal/internal/adapters/http"
	"siuportal/internal/adapters/http/perf"
	"siuportal/internal/adapters/storage"
	"siuportal/internal/adapters/storage/sessionstore"
	"siuportal/internal/application/orchestrators"
	"siuportal/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()

	// Performance instrumentation for slow queries and requests
	collector := perf.NewCollector(perf.DefaultRingSize)

	sessions, cleanup := openSessionStore(cfg, collector)
	defer cleanup()

	backendClient := backend.New(cfg.BackendURL, cfg.BackendTimeout)

	// Courtesy notifications; the portal works fine without them
	if cfg.ResendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.EmailReplyTo))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if cfg.Env == "production" {
			log.Println("WARNING: SIU_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set SIU_RESEND_KEY for real delivery)")
		}
	}

	web.RateLimitPerSecond = cfg.RateLimitPerSec
	mux := web.NewMux("static", &web.Deps{
		Backend:       backendClient,
		Sessions:      sessions,
		Confirms:      orchestrators.NewConfirmationStore(cfg.ConfirmTTL),
		SessionTTL:    cfg.SessionTTL,
		CSRFKey:       csrfKeyFromConfig(cfg),
		SlowRequestMS: cfg.SlowRequestMS,
	}, collector)

	log.Printf("Portal SIU %s starting on %s (env=%s, backend=%s)", version, cfg.Addr, cfg.Env, cfg.BackendURL)

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// csrfKeyFromConfig decodes SIU_CSRF_KEY (hex-encoded, 32 bytes).
// The key is required in production; elsewhere an empty key makes the
// HTTP layer generate a per-startup one.
func csrfKeyFromConfig(cfg config.App) []byte {
	if cfg.CSRFKey == "" {
		if cfg.Env == "production" {
			log.Fatal("SIU_CSRF_KEY is required in production")
		}
		return nil
	}
	key, err := hex.DecodeString(cfg.CSRFKey)
	if err != nil || len(key) != 32 {
		log.Fatal("SIU_CSRF_KEY must be 64 hex characters (32 bytes)")
	}
	return key
}

// openSessionStore returns the configured session store plus a cleanup
// for its resources. SQLite is the default; Redis is opt-in via
// SIU_SESSION_BACKEND=redis.
func openSessionStore(cfg config.App, collector *perf.Collector) (sessionstore.Store, func()) {
	if cfg.SessionBackend == "redis" {
		store := sessionstore.NewRedisStore(cfg.RedisAddr, cfg.SessionTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if !store.Healthy(ctx) {
			log.Fatalf("redis unreachable at %s", cfg.RedisAddr)
		}
		log.Printf("Session store: redis (%s)", cfg.RedisAddr)
		return store, func() {}
	}

	// SQLite with WAL mode, foreign keys, and busy timeout
	dsn := cfg.SessionDBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := sessionstore.NewSQLiteStore(storage.NewTimedDB(db, collector))
	startSessionSweeper(store, cfg.SessionTTL)
	log.Printf("Session store: sqlite (%s)", cfg.SessionDBPath)
	return store, func() { db.Close() }
}

// startSessionSweeper drops expired session records once an hour so
// the table does not grow without bound.
func startSessionSweeper(store sessionstore.Store, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			cutoff := time.Now().UTC().Add(-ttl)
			if err := store.DeleteExpired(ctx, cutoff); err != nil {
				log.Printf("session sweep failed: %v", err)
			}
			cancel()
		}
	}()
}
