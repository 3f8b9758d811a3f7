package auth

import (
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
)

// DefaultRequiredEnv lists the variables the auth subsystem cannot start
// without.
var DefaultRequiredEnv = []string{
	"AUTH_SIGNING_SECRET",
	"DATABASE_URL",
	"AUTH_BASE_URL",
}

// HealthChecker answers liveness probes. It reports unhealthy when the
// database does not respond or required configuration is missing, so a
// misconfigured instance is pulled out of rotation before it serves logins.
type HealthChecker struct {
	db       bun.IDB
	required []string
	version  string
	getenv   func(string) string
}

type HealthCheckerOption func(*HealthChecker)

func NewHealthChecker(db bun.IDB, opts ...HealthCheckerOption) *HealthChecker {
	h := &HealthChecker{
		db:       db,
		required: DefaultRequiredEnv,
		version:  "dev",
		getenv:   os.Getenv,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	return h
}

// WithRequiredEnv overrides the set of env vars the probe checks.
func WithRequiredEnv(names ...string) HealthCheckerOption {
	return func(h *HealthChecker) {
		h.required = names
	}
}

// WithVersion sets the version string reported in healthy responses.
func WithVersion(version string) HealthCheckerOption {
	return func(h *HealthChecker) {
		h.version = version
	}
}

// WithGetenv swaps the environment lookup, used in tests.
func WithGetenv(getenv func(string) string) HealthCheckerOption {
	return func(h *HealthChecker) {
		h.getenv = getenv
	}
}

// Handler returns the health endpoint handler.
func (h *HealthChecker) Handler() router.HandlerFunc {
	return func(ctx router.Context) error {
		if _, err := h.db.NewRaw("SELECT 1").Exec(ctx.Context()); err != nil {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  "Database connection failed",
			})
		}

		if missing := h.missingEnv(); len(missing) > 0 {
			return ctx.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  "Missing environment variables",
				"details": map[string]any{
					"missing": missing,
				},
			})
		}

		return ctx.JSON(http.StatusOK, map[string]any{
			"status":      "healthy",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"version":     h.version,
			"environment": h.getenv("APP_ENV"),
		})
	}
}

func (h *HealthChecker) missingEnv() []string {
	var missing []string
	for _, name := range h.required {
		if h.getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
