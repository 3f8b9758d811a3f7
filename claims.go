package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured JWT claims with role and tenant accessors
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	DisplayName() string
	Role() Role
	OrganizationID() string
	OrganizationName() string
	HasRole(role Role) bool
	IsAtLeast(minRole Role) bool
	CanAccessAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// SessionClaims is the concrete implementation of AuthClaims. The flat
// identity fields are denormalized into the token so route checks and page
// rendering never need a store lookup.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID      string         `json:"uid,omitempty"`
	UserMail string         `json:"email,omitempty"`
	Name     string         `json:"name,omitempty"`
	UserRole Role           `json:"role,omitempty"`
	OrgID    string         `json:"org_id,omitempty"`
	OrgName  string         `json:"org_name,omitempty"`
	Scopes   []string       `json:"scopes,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"` // extension payload
}

// Verify interface compliance
var _ AuthClaims = (*SessionClaims)(nil)

// newSessionClaims builds the identity portion of a token's claims. The
// registered claims (exp, iat, iss, aud, jti) are filled in by the token
// service when the token is signed.
func newSessionClaims(identity Identity) *SessionClaims {
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: identity.ID(),
		},
		UID:      identity.ID(),
		UserMail: identity.Email(),
		Name:     identity.Name(),
		UserRole: identity.Role(),
		OrgID:    identity.OrganizationID(),
		OrgName:  identity.OrganizationName(),
	}
}

// Subject returns the subject claim
func (c *SessionClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the account email
func (c *SessionClaims) Email() string {
	return c.UserMail
}

// DisplayName returns the account display name
func (c *SessionClaims) DisplayName() string {
	return c.Name
}

// Role returns the account role
func (c *SessionClaims) Role() Role {
	return c.UserRole
}

// RoleName returns the role as a plain string, used by packages that cannot
// depend on the Role type.
func (c *SessionClaims) RoleName() string {
	return string(c.UserRole)
}

// OrganizationID returns the tenant identifier
func (c *SessionClaims) OrganizationID() string {
	return c.OrgID
}

// OrganizationName returns the tenant display name
func (c *SessionClaims) OrganizationName() string {
	return c.OrgName
}

// ClaimsMetadata exposes metadata extensions for optional context enrichment.
func (c *SessionClaims) ClaimsMetadata() map[string]any {
	return c.Metadata
}

// HasRole checks if the session carries the exact role
func (c *SessionClaims) HasRole(role Role) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the session's role is at least the minimum required role
func (c *SessionClaims) IsAtLeast(minRole Role) bool {
	return c.UserRole.IsAtLeast(minRole)
}

// CanAccessAdmin reports whether the session may enter the admin area
func (c *SessionClaims) CanAccessAdmin() bool {
	return c.UserRole.CanAccessAdmin()
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
