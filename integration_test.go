package auth_test

import (
	"context"
	"database/sql"
	"testing"

	auth "github.com/ragaiq/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupRepoManager(t *testing.T) auth.RepositoryManager {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	err = db.ResetModel(context.Background(),
		(*auth.Organization)(nil),
		(*auth.OrganizationSettings)(nil),
		(*auth.Account)(nil),
	)
	require.NoError(t, err)

	return auth.NewRepositoryManager(db)
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	repo := setupRepoManager(t)

	require.NoError(t, auth.SeedDemoData(ctx, repo))

	account, err := repo.Accounts().GetByEmail(ctx, auth.DemoAccountEmail)
	require.NoError(t, err)
	assert.Equal(t, "Demo Admin", account.Name)
	assert.Equal(t, auth.RoleAdmin, account.Role)
	assert.True(t, account.IsActive)
	assert.Equal(t, "Demo Corp", account.OrganizationName())
	require.NoError(t, auth.ComparePasswordAndHash("demo123", account.PasswordHash))

	org, err := repo.Organizations().GetBySlug(ctx, auth.DemoOrgSlug)
	require.NoError(t, err)
	assert.Equal(t, auth.TierEnterprise, org.ContractTier)

	settings, err := repo.OrganizationSettings().GetByIdentifier(ctx, org.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"crr", "kwg", "marisk"}, settings.AvailableDocuments)
	assert.Equal(t, auth.LimitWarn, settings.LimitBehavior)

	t.Run("seeding is idempotent", func(t *testing.T) {
		require.NoError(t, auth.SeedDemoData(ctx, repo))

		again, err := repo.Accounts().GetByEmail(ctx, auth.DemoAccountEmail)
		require.NoError(t, err)
		assert.Equal(t, account.ID, again.ID, "existing account is reused")
		assert.Equal(t, org.ID, again.OrgID)
	})
}

func TestProvisionAccountHandler(t *testing.T) {
	ctx := context.Background()
	repo := setupRepoManager(t)
	handler := auth.NewProvisionAccountHandler(repo)

	err := handler.Execute(ctx, auth.ProvisionAccountMessage{
		Email:            "analyst@acme-bank.de",
		Name:             "Acme Analyst",
		Role:             auth.RoleUser,
		Password:         "s3cret-pass",
		OrganizationSlug: "acme-bank",
		OrganizationName: "Acme Bank",
		ContractTier:     auth.TierProfessional,
	})
	require.NoError(t, err)

	account, err := repo.Accounts().GetByEmail(ctx, "analyst@acme-bank.de")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, account.Role)
	assert.True(t, account.IsActive)
	assert.Equal(t, "Acme Bank", account.OrganizationName())
	require.NoError(t, auth.ComparePasswordAndHash("s3cret-pass", account.PasswordHash))

	t.Run("second account reuses the organization", func(t *testing.T) {
		err := handler.Execute(ctx, auth.ProvisionAccountMessage{
			Email:            "admin@acme-bank.de",
			Name:             "Acme Admin",
			Role:             auth.RoleAdmin,
			Password:         "an0ther-pass",
			OrganizationSlug: "acme-bank",
			ContractTier:     auth.TierProfessional,
		})
		require.NoError(t, err)

		second, err := repo.Accounts().GetByEmail(ctx, "admin@acme-bank.de")
		require.NoError(t, err)
		assert.Equal(t, account.OrgID, second.OrgID)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := handler.Execute(cancelled, auth.ProvisionAccountMessage{
			Email:            "late@acme-bank.de",
			OrganizationSlug: "acme-bank",
		})
		require.Error(t, err)
	})
}

// TestLoginFlow wires the real stack end to end: seeded tenant, credential
// verification against bcrypt hashes, token issuance, and the route gate.
func TestLoginFlow(t *testing.T) {
	ctx := context.Background()
	repo := setupRepoManager(t)
	require.NoError(t, auth.SeedDemoData(ctx, repo))

	provider := auth.NewAccountProvider(repo.Accounts())
	auther := auth.NewAuthenticator(provider, newMockConfig())

	t.Run("seeded credentials sign in", func(t *testing.T) {
		token, err := auther.Login(ctx, auth.DemoAccountEmail, "demo123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		session, err := auther.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, auth.DemoAccountEmail, session.GetEmail())
		assert.Equal(t, auth.RoleAdmin, session.GetRole())
		assert.Equal(t, "Demo Corp", session.GetOrganizationName())

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)

		table := auth.DefaultPolicyTable("/login", "/dashboard")
		assert.Equal(t, auth.OutcomeAllow, table.Evaluate("/admin", claims).Outcome)
		assert.Equal(t, auth.OutcomeAllow, table.Evaluate("/dashboard", claims).Outcome)
	})

	t.Run("login stamps last_login_at", func(t *testing.T) {
		account, err := repo.Accounts().GetByEmail(ctx, auth.DemoAccountEmail)
		require.NoError(t, err)
		require.NotNil(t, account.LastLoginAt)
	})

	t.Run("wrong password and unknown account read the same", func(t *testing.T) {
		_, errWrong := auther.Login(ctx, auth.DemoAccountEmail, "not-the-password")
		_, errUnknown := auther.Login(ctx, "nobody@demo-corp.com", "not-the-password")

		require.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
		assert.Equal(t, auth.MsgInvalidCredentials, auth.UserFacingMessage(errWrong))
	})

	t.Run("deactivated account cannot sign in", func(t *testing.T) {
		account, err := repo.Accounts().GetByEmail(ctx, auth.DemoAccountEmail)
		require.NoError(t, err)

		_, err = repo.Accounts().Deactivate(ctx, account.ID)
		require.NoError(t, err)

		_, err = auther.Login(ctx, auth.DemoAccountEmail, "demo123")
		require.ErrorIs(t, err, auth.ErrAccountDisabled)

		_, err = repo.Accounts().Reactivate(ctx, account.ID)
		require.NoError(t, err)

		_, err = auther.Login(ctx, auth.DemoAccountEmail, "demo123")
		require.NoError(t, err)
	})
}
