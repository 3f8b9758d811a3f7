package auth_test

import (
	"testing"

	auth "github.com/ragaiq/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestRoleIsValid(t *testing.T) {
	assert.True(t, auth.RoleUser.IsValid())
	assert.True(t, auth.RoleAdmin.IsValid())
	assert.True(t, auth.RoleSuperAdmin.IsValid())
	assert.False(t, auth.Role("INTERN").IsValid())
	assert.False(t, auth.Role("").IsValid())
	assert.False(t, auth.Role("admin").IsValid(), "role names are case sensitive")
}

func TestRoleHierarchy(t *testing.T) {
	assert.True(t, auth.RoleSuperAdmin.IsAtLeast(auth.RoleUser))
	assert.True(t, auth.RoleSuperAdmin.IsAtLeast(auth.RoleAdmin))
	assert.True(t, auth.RoleSuperAdmin.IsAtLeast(auth.RoleSuperAdmin))

	assert.True(t, auth.RoleAdmin.IsAtLeast(auth.RoleUser))
	assert.True(t, auth.RoleAdmin.IsAtLeast(auth.RoleAdmin))
	assert.False(t, auth.RoleAdmin.IsAtLeast(auth.RoleSuperAdmin))

	assert.True(t, auth.RoleUser.IsAtLeast(auth.RoleUser))
	assert.False(t, auth.RoleUser.IsAtLeast(auth.RoleAdmin))

	assert.False(t, auth.Role("INTERN").IsAtLeast(auth.RoleUser), "unknown roles rank below everything")
	assert.False(t, auth.RoleUser.IsAtLeast(auth.Role("INTERN")), "unknown minimums never pass")
}

func TestRoleAdminAccess(t *testing.T) {
	assert.False(t, auth.RoleUser.CanAccessAdmin())
	assert.True(t, auth.RoleAdmin.CanAccessAdmin())
	assert.True(t, auth.RoleSuperAdmin.CanAccessAdmin())

	assert.False(t, auth.RoleUser.CanManagePlatform())
	assert.False(t, auth.RoleAdmin.CanManagePlatform())
	assert.True(t, auth.RoleSuperAdmin.CanManagePlatform())
}

func TestParseRole(t *testing.T) {
	role, ok := auth.ParseRole("ADMIN")
	assert.True(t, ok)
	assert.Equal(t, auth.RoleAdmin, role)

	_, ok = auth.ParseRole("superuser")
	assert.False(t, ok)
}

func TestGetAllRoles(t *testing.T) {
	roles := auth.GetAllRoles()
	assert.Equal(t, []auth.Role{auth.RoleUser, auth.RoleAdmin, auth.RoleSuperAdmin}, roles)
}

func TestContractTiers(t *testing.T) {
	assert.True(t, auth.TierProfessional.IsValid())
	assert.True(t, auth.TierEnterprise.IsValid())
	assert.True(t, auth.TierEnterprisePlus.IsValid())
	assert.False(t, auth.ContractTier("FREE").IsValid())

	assert.True(t, auth.TierEnterprisePlus.IsAtLeast(auth.TierEnterprise))
	assert.True(t, auth.TierEnterprise.IsAtLeast(auth.TierProfessional))
	assert.False(t, auth.TierProfessional.IsAtLeast(auth.TierEnterprise))
}
