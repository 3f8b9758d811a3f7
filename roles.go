package auth

// Role is an account's global role within its organization.
type Role string

const (
	// RoleUser is a regular member (chat, documents).
	RoleUser Role = "USER"
	// RoleAdmin manages the organization (team, settings).
	RoleAdmin Role = "ADMIN"
	// RoleSuperAdmin is a platform operator spanning organizations.
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// CanAccessAdmin checks if this role may enter the administrative section
func (r Role) CanAccessAdmin() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// CanManagePlatform checks if this role may operate across organizations
func (r Role) CanManagePlatform() bool {
	return r == RoleSuperAdmin
}

// IsAtLeast checks if this role meets the minimum required level
func (r Role) IsAtLeast(minRole Role) bool {
	roleHierarchy := map[Role]int{
		RoleUser:       0,
		RoleAdmin:      1,
		RoleSuperAdmin: 2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []Role {
	return []Role{
		RoleUser,
		RoleAdmin,
		RoleSuperAdmin,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}

// ContractTier is an organization's contract level.
type ContractTier string

const (
	TierProfessional   ContractTier = "PROFESSIONAL"
	TierEnterprise     ContractTier = "ENTERPRISE"
	TierEnterprisePlus ContractTier = "ENTERPRISE_PLUS"
)

// IsValid checks if the tier is one of the predefined contract tiers
func (t ContractTier) IsValid() bool {
	switch t {
	case TierProfessional, TierEnterprise, TierEnterprisePlus:
		return true
	default:
		return false
	}
}

// IsAtLeast checks if this tier meets the minimum required contract level
func (t ContractTier) IsAtLeast(minTier ContractTier) bool {
	tierHierarchy := map[ContractTier]int{
		TierProfessional:   0,
		TierEnterprise:     1,
		TierEnterprisePlus: 2,
	}

	currentLevel, exists := tierHierarchy[t]
	if !exists {
		return false
	}

	minLevel, exists := tierHierarchy[minTier]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}
