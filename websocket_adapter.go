package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-router"
)

// WSTokenValidator implements go-router's WSTokenValidator interface
// using the TokenService so chat stream upgrades authenticate with the
// same session tokens as HTTP routes.
type WSTokenValidator struct {
	tokenService TokenService
}

// NewWSTokenValidator creates a new WebSocket token validator using the provided TokenService
func NewWSTokenValidator(tokenService TokenService) *WSTokenValidator {
	return &WSTokenValidator{
		tokenService: tokenService,
	}
}

// Validate validates a token string and returns WebSocket-compatible auth claims
func (w *WSTokenValidator) Validate(tokenString string) (router.WSAuthClaims, error) {
	claims, err := w.tokenService.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &WSAuthClaimsAdapter{claims: claims}, nil
}

// WSAuthClaimsAdapter adapts AuthClaims to go-router's WSAuthClaims interface.
// go-router works with string role names, so the adapter translates between
// the typed Role and its wire representation.
type WSAuthClaimsAdapter struct {
	claims AuthClaims
}

// Subject returns the subject claim
func (w *WSAuthClaimsAdapter) Subject() string {
	return w.claims.Subject()
}

// UserID returns the user ID
func (w *WSAuthClaimsAdapter) UserID() string {
	return w.claims.UserID()
}

// Role returns the user's role name
func (w *WSAuthClaimsAdapter) Role() string {
	return string(w.claims.Role())
}

// CanRead reports whether the session may subscribe to a resource stream.
// Admin-scoped resources require an administrative role, everything else is
// readable by any authenticated session.
func (w *WSAuthClaimsAdapter) CanRead(resource string) bool {
	if isAdminResource(resource) {
		return w.claims.CanAccessAdmin()
	}
	return true
}

// CanEdit reports whether the session may mutate a resource over the stream
func (w *WSAuthClaimsAdapter) CanEdit(resource string) bool {
	if isAdminResource(resource) {
		return w.claims.CanAccessAdmin()
	}
	return true
}

// CanCreate reports whether the session may create a resource over the stream
func (w *WSAuthClaimsAdapter) CanCreate(resource string) bool {
	if isAdminResource(resource) {
		return w.claims.CanAccessAdmin()
	}
	return true
}

// CanDelete reports whether the session may delete a resource. Deletes are
// administrative regardless of resource.
func (w *WSAuthClaimsAdapter) CanDelete(resource string) bool {
	return w.claims.CanAccessAdmin()
}

// HasRole checks if the user has a specific role
func (w *WSAuthClaimsAdapter) HasRole(role string) bool {
	r, ok := ParseRole(role)
	if !ok {
		return false
	}
	return w.claims.HasRole(r)
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (w *WSAuthClaimsAdapter) IsAtLeast(minRole string) bool {
	r, ok := ParseRole(minRole)
	if !ok {
		return false
	}
	return w.claims.IsAtLeast(r)
}

func isAdminResource(resource string) bool {
	return resource == "admin" || strings.HasPrefix(resource, "admin:") || strings.HasPrefix(resource, "admin/")
}

// NewWSAuthMiddleware creates a fully configured WebSocket authentication
// middleware backed by this authenticator's TokenService.
func (a *Auther) NewWSAuthMiddleware(config ...router.WSAuthConfig) router.WebSocketMiddleware {
	validator := NewWSTokenValidator(a.tokenService)

	var cfg router.WSAuthConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	cfg.TokenValidator = validator

	return router.NewWSAuth(cfg)
}

// WSAuthClaimsFromContext retrieves the auth claims a stream upgrade stored in
// the connection context. It returns the underlying AuthClaims so callers get
// the typed role accessors back.
func WSAuthClaimsFromContext(ctx context.Context) (AuthClaims, bool) {
	wsAuthClaims, ok := router.WSAuthClaimsFromContext(ctx)
	if !ok {
		return nil, false
	}

	if adapter, ok := wsAuthClaims.(*WSAuthClaimsAdapter); ok {
		return adapter.claims, true
	}

	return nil, false
}
