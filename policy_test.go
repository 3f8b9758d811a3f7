package auth_test

import (
	"testing"

	auth "github.com/ragaiq/go-auth"
	"github.com/stretchr/testify/assert"
)

func policyClaims(role auth.Role) auth.AuthClaims {
	return &auth.SessionClaims{
		UID:      "acc-1",
		UserMail: "demo@demo-corp.com",
		UserRole: role,
		OrgID:    "org-1",
	}
}

func TestDefaultPolicyTable(t *testing.T) {
	table := auth.DefaultPolicyTable("/login", "/dashboard")

	t.Run("anonymous dashboard redirects to login with callback", func(t *testing.T) {
		decision := table.Evaluate("/dashboard/reports", nil)
		assert.Equal(t, auth.OutcomeLoginRedirect, decision.Outcome)
		assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Freports", decision.RedirectTo)
	})

	t.Run("authenticated user passes dashboard", func(t *testing.T) {
		decision := table.Evaluate("/dashboard", policyClaims(auth.RoleUser))
		assert.Equal(t, auth.OutcomeAllow, decision.Outcome)
	})

	t.Run("user on admin falls back to landing", func(t *testing.T) {
		decision := table.Evaluate("/admin/accounts", policyClaims(auth.RoleUser))
		assert.Equal(t, auth.OutcomeFallbackRedirect, decision.Outcome)
		assert.Equal(t, "/dashboard", decision.RedirectTo)
	})

	t.Run("admin and super admin pass admin", func(t *testing.T) {
		for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin} {
			decision := table.Evaluate("/admin", policyClaims(role))
			assert.Equal(t, auth.OutcomeAllow, decision.Outcome, "role %s", role)
		}
	})

	t.Run("anonymous admin redirects to login", func(t *testing.T) {
		decision := table.Evaluate("/admin", nil)
		assert.Equal(t, auth.OutcomeLoginRedirect, decision.Outcome)
		assert.Equal(t, "/login?callbackUrl=%2Fadmin", decision.RedirectTo)
	})

	t.Run("anonymous protected api gets 401 not a redirect", func(t *testing.T) {
		decision := table.Evaluate("/api/protected/widgets", nil)
		assert.Equal(t, auth.OutcomeUnauthorized, decision.Outcome)
		assert.Empty(t, decision.RedirectTo)
	})

	t.Run("authenticated protected api passes", func(t *testing.T) {
		decision := table.Evaluate("/api/protected/widgets", policyClaims(auth.RoleUser))
		assert.Equal(t, auth.OutcomeAllow, decision.Outcome)
	})

	t.Run("unmatched paths are public", func(t *testing.T) {
		for _, path := range []string{"/", "/login", "/about", "/api/public"} {
			decision := table.Evaluate(path, nil)
			assert.Equal(t, auth.OutcomeAllow, decision.Outcome, "path %s", path)
		}
	})

	t.Run("prefixes match on segment boundaries", func(t *testing.T) {
		decision := table.Evaluate("/administration", nil)
		assert.Equal(t, auth.OutcomeAllow, decision.Outcome)

		decision = table.Evaluate("/dashboards", nil)
		assert.Equal(t, auth.OutcomeAllow, decision.Outcome)
	})
}

func TestPolicyTableDefaults(t *testing.T) {
	table := auth.NewPolicyTable("", "",
		auth.RoutePolicy{Prefix: "/dashboard", OnUnauthenticated: auth.OutcomeLoginRedirect},
	)
	assert.Equal(t, "/login", table.LoginRoute())
	assert.Equal(t, "/dashboard", table.LandingRoute())

	decision := table.Evaluate("/dashboard", nil)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard", decision.RedirectTo)
}

func TestPolicyTableFirstMatchWins(t *testing.T) {
	table := auth.NewPolicyTable("/login", "/dashboard",
		auth.RoutePolicy{Prefix: "/admin/api", OnUnauthenticated: auth.OutcomeUnauthorized, OnForbidden: auth.OutcomeUnauthorized},
		auth.RoutePolicy{Prefix: "/admin", MinRole: auth.RoleAdmin, OnUnauthenticated: auth.OutcomeLoginRedirect, OnForbidden: auth.OutcomeFallbackRedirect},
	)

	decision := table.Evaluate("/admin/api/status", nil)
	assert.Equal(t, auth.OutcomeUnauthorized, decision.Outcome)

	decision = table.Evaluate("/admin/users", nil)
	assert.Equal(t, auth.OutcomeLoginRedirect, decision.Outcome)
}
