package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	auth "github.com/ragaiq/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestSessionClaimsAccessors(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UID:      "acc-1",
		UserMail: "demo@demo-corp.com",
		Name:     "Demo Admin",
		UserRole: auth.RoleAdmin,
		OrgID:    "org-1",
		OrgName:  "Demo Corp",
		Metadata: map[string]any{"contract_tier": "PREMIUM"},
	}

	assert.Equal(t, "acc-1", claims.Subject())
	assert.Equal(t, "acc-1", claims.UserID())
	assert.Equal(t, "demo@demo-corp.com", claims.Email())
	assert.Equal(t, "Demo Admin", claims.DisplayName())
	assert.Equal(t, auth.RoleAdmin, claims.Role())
	assert.Equal(t, "ADMIN", claims.RoleName())
	assert.Equal(t, "org-1", claims.OrganizationID())
	assert.Equal(t, "Demo Corp", claims.OrganizationName())
	assert.Equal(t, map[string]any{"contract_tier": "PREMIUM"}, claims.ClaimsMetadata())
	assert.Equal(t, now, claims.IssuedAt())
	assert.Equal(t, now.Add(time.Hour), claims.Expires())
}

func TestSessionClaimsUserIDFallsBackToSubject(t *testing.T) {
	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "acc-1"},
	}
	assert.Equal(t, "acc-1", claims.UserID())
}

func TestSessionClaimsRoleChecks(t *testing.T) {
	admin := &auth.SessionClaims{UserRole: auth.RoleAdmin}
	user := &auth.SessionClaims{UserRole: auth.RoleUser}

	assert.True(t, admin.HasRole(auth.RoleAdmin))
	assert.False(t, admin.HasRole(auth.RoleSuperAdmin))
	assert.True(t, admin.IsAtLeast(auth.RoleUser))
	assert.True(t, admin.CanAccessAdmin())

	assert.False(t, user.IsAtLeast(auth.RoleAdmin))
	assert.False(t, user.CanAccessAdmin())
}

func TestSessionClaimsZeroTimes(t *testing.T) {
	claims := &auth.SessionClaims{}
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
}
