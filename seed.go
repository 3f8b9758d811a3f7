package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// Demo tenant fixture, safe to run repeatedly.
const (
	DemoOrgSlug      = "demo-corp"
	DemoAccountEmail = "demo@demo-corp.com"
	demoPassword     = "demo123"
)

// SeedDemoData provisions the demo organization and its admin account. It is
// idempotent: existing records are left untouched.
func SeedDemoData(ctx context.Context, repo RepositoryManager) error {
	return repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		org, err := repo.Organizations().GetOrCreateTx(ctx, tx, &Organization{
			Slug:                DemoOrgSlug,
			Name:                "Demo Corp",
			ContractTier:        TierEnterprise,
			MaxSeats:            100,
			MaxRequestsPerMonth: 1000000,
			PrimaryColor:        "#5ce1e6",
			SupportEmail:        "support@demo-corp.com",
		})
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed demo organization")
		}

		if _, err := repo.OrganizationSettings().GetByIdentifierTx(ctx, tx, org.ID.String()); err != nil {
			if !repository.IsRecordNotFound(err) {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up demo organization settings")
			}

			if _, err := repo.OrganizationSettings().CreateTx(ctx, tx, &OrganizationSettings{
				OrgID:               org.ID,
				AvailableDocuments:  []string{"crr", "kwg", "marisk"},
				AvailableLanguages:  []string{"de", "en"},
				DefaultDailyLimit:   500,
				DefaultMonthlyLimit: 10000,
				LimitBehavior:       LimitWarn,
			}); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed demo organization settings")
			}
		}

		hash, err := HashPassword(demoPassword)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash demo password")
		}

		if _, err := repo.Accounts().GetOrCreateTx(ctx, tx, &Account{
			Email:        DemoAccountEmail,
			Name:         "Demo Admin",
			Role:         RoleAdmin,
			OrgID:        org.ID,
			PasswordHash: hash,
			IsActive:     true,
		}); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to seed demo account")
		}

		return nil
	})
}
