package auth

import (
	"context"

	"github.com/goliatone/go-router"
)

var accountCtxKey = &contextKey{"account"}
var claimsCtxKey = &contextKey{"claims"}
var actorCtxKey = &contextKey{"actor"}

type contextKey struct {
	name string
}

// ActorContext is the request-scoped view of the authenticated actor,
// carried through the standard context for downstream handlers.
type ActorContext struct {
	ActorID    string
	Email      string
	Role       Role
	TenantID   string
	TenantName string
}

// WithContext sets the Account in the given context
func WithContext(r context.Context, account *Account) context.Context {
	return context.WithValue(r, accountCtxKey, account)
}

// FromContext finds the account from the context.
func FromContext(ctx context.Context) (*Account, bool) {
	raw, ok := ctx.Value(accountCtxKey).(*Account)
	return raw, ok
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// WithActorContext sets the ActorContext in the given context
func WithActorContext(r context.Context, actor *ActorContext) context.Context {
	return context.WithValue(r, actorCtxKey, actor)
}

// GetActorContext extracts the ActorContext from the standard context
func GetActorContext(ctx context.Context) (*ActorContext, bool) {
	raw, ok := ctx.Value(actorCtxKey).(*ActorContext)
	return raw, ok
}

// ActorContextFromClaims builds an ActorContext from validated claims,
// nil when the claims carry no subject.
func ActorContextFromClaims(claims AuthClaims) *ActorContext {
	if claims == nil || claims.UserID() == "" {
		return nil
	}

	return &ActorContext{
		ActorID:    claims.UserID(),
		Email:      claims.Email(),
		Role:       claims.Role(),
		TenantID:   claims.OrganizationID(),
		TenantName: claims.OrganizationName(),
	}
}

// GetRouterClaims extracts the AuthClaims from the router context
func GetRouterClaims(ctx router.Context, key string) (AuthClaims, bool) {
	if key == "" {
		key = "user" // Default key used by JWT middleware
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(AuthClaims)
	return claims, ok
}

// IsAtLeastFromRouter checks the minimum role directly from the router context
func IsAtLeastFromRouter(ctx router.Context, minRole Role) bool {
	claims, ok := GetRouterClaims(ctx, "")
	if !ok {
		return false
	}
	return claims.IsAtLeast(minRole)
}

// CanAccessAdminFromRouter checks admin area access directly from the router context
func CanAccessAdminFromRouter(ctx router.Context) bool {
	claims, ok := GetRouterClaims(ctx, "")
	if !ok {
		return false
	}
	return claims.CanAccessAdmin()
}
