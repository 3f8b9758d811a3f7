package auth

import (
	"net/url"
	"strings"
)

// GateOutcome is what the route gate decided to do with a request.
type GateOutcome int

const (
	// OutcomeAllow lets the request through.
	OutcomeAllow GateOutcome = iota
	// OutcomeLoginRedirect sends the browser to the login page with the
	// original path preserved in the callback parameter.
	OutcomeLoginRedirect
	// OutcomeFallbackRedirect sends an authenticated but under-privileged
	// session to its landing page.
	OutcomeFallbackRedirect
	// OutcomeUnauthorized answers with a JSON 401 body, for API routes
	// where a redirect makes no sense.
	OutcomeUnauthorized
)

// GateDecision is the result of evaluating a request path against the policy
// table.
type GateDecision struct {
	Outcome    GateOutcome
	RedirectTo string
}

// RoutePolicy protects a path prefix. A zero MinRole means any authenticated
// session passes; OnUnauthenticated and OnForbidden select the failure mode
// for the two ways a request can be rejected.
type RoutePolicy struct {
	Prefix            string
	MinRole           Role
	OnUnauthenticated GateOutcome
	OnForbidden       GateOutcome
}

// PolicyTable evaluates request paths against an ordered list of route
// policies. First matching prefix wins; paths that match nothing are public.
type PolicyTable struct {
	policies     []RoutePolicy
	loginRoute   string
	landingRoute string
}

// NewPolicyTable builds a policy table with explicit policies.
func NewPolicyTable(loginRoute, landingRoute string, policies ...RoutePolicy) *PolicyTable {
	if loginRoute == "" {
		loginRoute = "/login"
	}
	if landingRoute == "" {
		landingRoute = "/dashboard"
	}
	return &PolicyTable{
		policies:     policies,
		loginRoute:   loginRoute,
		landingRoute: landingRoute,
	}
}

// DefaultPolicyTable covers the application's protected surfaces: the
// dashboard for any signed-in account, the admin area for admins, and the
// protected API prefix which answers JSON instead of redirecting.
func DefaultPolicyTable(loginRoute, landingRoute string) *PolicyTable {
	return NewPolicyTable(loginRoute, landingRoute,
		RoutePolicy{
			Prefix:            "/dashboard",
			OnUnauthenticated: OutcomeLoginRedirect,
			OnForbidden:       OutcomeFallbackRedirect,
		},
		RoutePolicy{
			Prefix:            "/admin",
			MinRole:           RoleAdmin,
			OnUnauthenticated: OutcomeLoginRedirect,
			OnForbidden:       OutcomeFallbackRedirect,
		},
		RoutePolicy{
			Prefix:            "/api/protected",
			OnUnauthenticated: OutcomeUnauthorized,
			OnForbidden:       OutcomeUnauthorized,
		},
	)
}

// LoginRoute returns the configured login path.
func (t *PolicyTable) LoginRoute() string {
	return t.loginRoute
}

// LandingRoute returns the configured post-login landing path.
func (t *PolicyTable) LandingRoute() string {
	return t.landingRoute
}

// Evaluate decides what to do with a request for path carrying the given
// claims. Claims are nil for anonymous requests and for requests whose token
// failed validation; the gate does not distinguish the two.
func (t *PolicyTable) Evaluate(path string, claims AuthClaims) GateDecision {
	policy, ok := t.match(path)
	if !ok {
		return GateDecision{Outcome: OutcomeAllow}
	}

	if claims == nil {
		return t.reject(policy.OnUnauthenticated, path)
	}

	if policy.MinRole != "" && !claims.IsAtLeast(policy.MinRole) {
		return t.reject(policy.OnForbidden, path)
	}

	return GateDecision{Outcome: OutcomeAllow}
}

func (t *PolicyTable) match(path string) (RoutePolicy, bool) {
	for _, p := range t.policies {
		if pathHasPrefix(path, p.Prefix) {
			return p, true
		}
	}
	return RoutePolicy{}, false
}

func (t *PolicyTable) reject(outcome GateOutcome, path string) GateDecision {
	switch outcome {
	case OutcomeLoginRedirect:
		return GateDecision{
			Outcome:    OutcomeLoginRedirect,
			RedirectTo: t.loginRoute + "?" + CallbackURLParam + "=" + url.QueryEscape(path),
		}
	case OutcomeFallbackRedirect:
		return GateDecision{
			Outcome:    OutcomeFallbackRedirect,
			RedirectTo: t.landingRoute,
		}
	default:
		return GateDecision{Outcome: OutcomeUnauthorized}
	}
}

// pathHasPrefix matches on segment boundaries so /admin does not capture
// /administration.
func pathHasPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
