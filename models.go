package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LimitBehavior controls what happens when an organization exhausts its quota.
type LimitBehavior = string

const (
	// LimitWarn surfaces a warning but lets requests through
	LimitWarn LimitBehavior = "WARN"
	// LimitBlock rejects requests over the limit
	LimitBlock LimitBehavior = "BLOCK"
)

// Organization is the tenant model. Every account belongs to exactly one
// organization, and the organization must exist before any account references it.
type Organization struct {
	bun.BaseModel       `bun:"table:organizations,alias:org"`
	ID                  uuid.UUID             `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Slug                string                `bun:"slug,notnull,unique" json:"slug,omitempty"`
	Name                string                `bun:"name,notnull" json:"name,omitempty"`
	ContractTier        ContractTier          `bun:"contract_tier,notnull" json:"contract_tier,omitempty"`
	MaxSeats            int                   `bun:"max_seats" json:"max_seats,omitempty"`
	MaxRequestsPerMonth int                   `bun:"max_requests_per_month" json:"max_requests_per_month,omitempty"`
	LogoURL             string                `bun:"logo_url" json:"logo_url,omitempty"`
	PrimaryColor        string                `bun:"primary_color" json:"primary_color,omitempty"`
	SupportEmail        string                `bun:"support_email" json:"support_email,omitempty"`
	SSOEnabled          bool                  `bun:"sso_enabled" json:"sso_enabled,omitempty"`
	SSOProvider         string                `bun:"sso_provider" json:"sso_provider,omitempty"`
	Settings            *OrganizationSettings `bun:"rel:has-one,join:id=org_id" json:"settings,omitempty"`
	CreatedAt           *time.Time            `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt           *time.Time            `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// OrganizationSettings holds the per-tenant corpus and quota configuration.
type OrganizationSettings struct {
	bun.BaseModel       `bun:"table:organization_settings,alias:orgs"`
	ID                  uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OrgID               uuid.UUID     `bun:"org_id,notnull,unique,type:uuid" json:"org_id,omitempty"`
	AvailableDocuments  []string      `bun:"available_documents,type:jsonb" json:"available_documents,omitempty"`
	AvailableLanguages  []string      `bun:"available_languages,type:jsonb" json:"available_languages,omitempty"`
	DefaultDailyLimit   int           `bun:"default_daily_limit" json:"default_daily_limit,omitempty"`
	DefaultMonthlyLimit int           `bun:"default_monthly_limit" json:"default_monthly_limit,omitempty"`
	LimitBehavior       LimitBehavior `bun:"limit_behavior" json:"limit_behavior,omitempty"`
	CreatedAt           *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt           *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Account is a login-capable identity scoped to an organization.
// Accounts are never hard-deleted: deactivation flips IsActive, removal is a
// soft delete.
type Account struct {
	bun.BaseModel   `bun:"table:accounts,alias:acc"`
	ID              uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email           string         `bun:"email,notnull,unique" json:"email,omitempty"`
	Name            string         `bun:"name" json:"name,omitempty"`
	Role            Role           `bun:"role,notnull" json:"role,omitempty"`
	OrgID           uuid.UUID      `bun:"org_id,notnull,type:uuid" json:"org_id,omitempty"`
	Organization    *Organization  `bun:"rel:belongs-to,join:org_id=id" json:"organization,omitempty"`
	PasswordHash    string         `bun:"password_hash" json:"password_hash,omitempty"`
	IsActive        bool           `bun:"is_active,notnull" json:"is_active,omitempty"`
	EmailVerifiedAt *time.Time     `bun:"email_verified_at,nullzero" json:"email_verified_at,omitempty"`
	LastLoginAt     *time.Time     `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
	Metadata        map[string]any `bun:"metadata" json:"metadata,omitempty"`
	CreatedAt       *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt       *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// AddMetadata will append information to a metadata attribute
func (a *Account) AddMetadata(key string, val any) *Account {
	if a.Metadata == nil {
		a.Metadata = make(map[string]any)
	}
	a.Metadata[key] = val
	return a
}

// OrganizationName returns the display name of the account's organization,
// empty when the relation was not loaded.
func (a *Account) OrganizationName() string {
	if a.Organization == nil {
		return ""
	}
	return a.Organization.Name
}

// NormalizeEmail lowercases and trims an email so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
