package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	Addr            string
	BackendURL      string
	BackendTimeout  time.Duration
	SessionDBPath   string
	SessionBackend  string
	SessionTTL      time.Duration
	RedisAddr       string
	CSRFKey         string
	ResendKey       string
	EmailFrom       string
	EmailReplyTo    string
	RateLimitPerSec int
	ConfirmTTL      time.Duration
	SlowRequestMS   int
}

// Load returns application config populated from environment variables
// with sensible defaults. A .env file in the working directory is read
// first when present.
func Load() App {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: skipping .env: %v", err)
	}
	return App{
		Env:             getEnv("SIU_ENV", "dev"),
		Addr:            getEnv("SIU_ADDR", ":8080"),
		BackendURL:      getEnv("SIU_BACKEND_URL", "http://localhost:3001"),
		BackendTimeout:  durationEnv("SIU_BACKEND_TIMEOUT", 10*time.Second),
		SessionDBPath:   getEnv("SIU_SESSION_DB", "siuportal.db"),
		SessionBackend:  getEnv("SIU_SESSION_BACKEND", "sqlite"),
		SessionTTL:      durationEnv("SIU_SESSION_TTL", 24*time.Hour),
		RedisAddr:       getEnv("SIU_REDIS_ADDR", "localhost:6379"),
		CSRFKey:         getEnv("SIU_CSRF_KEY", ""),
		ResendKey:       getEnv("SIU_RESEND_KEY", ""),
		EmailFrom:       getEnv("SIU_EMAIL_FROM", "SIU Portal <noreply@siuportal.example>"),
		EmailReplyTo:    getEnv("SIU_EMAIL_REPLY_TO", ""),
		RateLimitPerSec: intEnv("SIU_RATE_LIMIT_PER_SEC", 20),
		ConfirmTTL:      durationEnv("SIU_CONFIRM_TTL", 5*time.Minute),
		SlowRequestMS:   intEnv("SIU_SLOW_REQUEST_MS", 500),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
