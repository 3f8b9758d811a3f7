package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

type SessionObject struct {
	UserID         string         `json:"user_id,omitempty"`
	Email          string         `json:"email,omitempty"`
	Name           string         `json:"name,omitempty"`
	Role           Role           `json:"role,omitempty"`
	OrgID          string         `json:"org_id,omitempty"`
	OrgName        string         `json:"org_name,omitempty"`
	Audience       []string       `json:"audience,omitempty"`
	Issuer         string         `json:"issuer,omitempty"`
	IssuedAt       *time.Time     `json:"issued_at,omitempty"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetName() string {
	return s.Name
}

func (s *SessionObject) GetRole() Role {
	return s.Role
}

func (s *SessionObject) GetOrganizationID() string {
	return s.OrgID
}

func (s *SessionObject) GetOrganizationName() string {
	return s.OrgName
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

func (s *SessionObject) GetData() map[string]any {
	return s.Data
}

// HasRole checks if the session carries the exact role
func (s *SessionObject) HasRole(role Role) bool {
	return s.Role == role
}

// IsAtLeast checks if the session's role is at least the minimum required role
func (s *SessionObject) IsAtLeast(minRole Role) bool {
	return s.Role.IsAtLeast(minRole)
}

// CanAccessAdmin reports whether the session may enter the admin area
func (s *SessionObject) CanAccessAdmin() bool {
	return s.Role.CanAccessAdmin()
}

// TODO: enable only in development!
func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s email=%s role=%s org=%s aud=%v iss=%s iat=%s",
		s.UserID,
		s.Email,
		s.Role,
		s.OrgID,
		s.Audience,
		s.Issuer,
		issuedAt,
	)
}

// sessionFromAuthClaims creates a SessionObject from the AuthClaims interface
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	data := make(map[string]any)
	data["role"] = string(claims.Role())

	var audience []string
	issuer := claims.Subject()

	if sc, ok := claims.(*SessionClaims); ok {
		if len(sc.Metadata) > 0 {
			data["metadata"] = sc.Metadata
		}
		if len(sc.Scopes) > 0 {
			data["scopes"] = sc.Scopes
		}
		audience = append(audience, sc.RegisteredClaims.Audience...)
		if sc.RegisteredClaims.Issuer != "" {
			issuer = sc.RegisteredClaims.Issuer
		}
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		UserID:         claims.UserID(),
		Email:          claims.Email(),
		Name:           claims.DisplayName(),
		Role:           claims.Role(),
		OrgID:          claims.OrganizationID(),
		OrgName:        claims.OrganizationName(),
		Audience:       audience,
		Issuer:         issuer,
		Data:           data,
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}

// sessionFromClaims creates a SessionObject from raw jwt.MapClaims, used when
// the middleware stored a parsed *jwt.Token in the request context.
func sessionFromClaims(claims jwt.MapClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	session := &SessionObject{
		Data: map[string]any{},
	}

	if sub, err := claims.GetSubject(); err == nil {
		session.UserID = sub
	}

	if uid, ok := claims["uid"].(string); ok && uid != "" {
		session.UserID = uid
	}

	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}

	if name, ok := claims["name"].(string); ok {
		session.Name = name
	}

	if role, ok := claims["role"].(string); ok {
		if parsed, valid := ParseRole(role); valid {
			session.Role = parsed
		}
		session.Data["role"] = role
	}

	if orgID, ok := claims["org_id"].(string); ok {
		session.OrgID = orgID
	}

	if orgName, ok := claims["org_name"].(string); ok {
		session.OrgName = orgName
	}

	if iss, err := claims.GetIssuer(); err == nil {
		session.Issuer = iss
	}

	if aud, err := claims.GetAudience(); err == nil {
		session.Audience = append(session.Audience, aud...)
	}

	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		session.IssuedAt = &iat.Time
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpirationDate = &exp.Time
	}

	if session.UserID == "" {
		return nil, ErrUnableToParseData
	}

	return session, nil
}
