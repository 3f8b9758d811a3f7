package auth_test

import (
	"testing"
	"time"

	auth "github.com/ragaiq/go-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintScopedToken(t *testing.T) {
	svc := newTestTokenService()

	t.Run("mints a validated token with scopes", func(t *testing.T) {
		token, expiresAt, err := auth.MintScopedToken(svc, testIdentity(), auth.ScopedTokenOptions{
			TTL:    15 * time.Minute,
			Scopes: []string{"reports:read", "reports:export"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, time.Minute)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "acc-1", claims.UserID())

		session, ok := claims.(*auth.SessionClaims)
		require.True(t, ok)
		assert.Equal(t, []string{"reports:read", "reports:export"}, session.Scopes)
		assert.NotEmpty(t, session.RegisteredClaims.ID)
	})

	t.Run("service defaults fill issuer audience and ttl", func(t *testing.T) {
		token, expiresAt, err := auth.MintScopedToken(svc, testIdentity(), auth.ScopedTokenOptions{})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

		claims, err := svc.Validate(token)
		require.NoError(t, err)

		session := claims.(*auth.SessionClaims)
		assert.Equal(t, "test-issuer", session.RegisteredClaims.Issuer)
		assert.Contains(t, session.RegisteredClaims.Audience, "test:audience")
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, _, err := auth.MintScopedToken(nil, testIdentity(), auth.ScopedTokenOptions{})
		require.Error(t, err)

		_, _, err = auth.MintScopedToken(svc, nil, auth.ScopedTokenOptions{})
		require.Error(t, err)
	})

	t.Run("negative ttl is rejected", func(t *testing.T) {
		_, _, err := auth.MintScopedToken(svc, testIdentity(), auth.ScopedTokenOptions{
			TTL: -time.Minute,
		})
		require.Error(t, err)
	})
}

func TestNewIdentityFromAccount(t *testing.T) {
	assert.Nil(t, auth.NewIdentityFromAccount(nil))

	account := newTestAccount(t, "password123")
	identity := auth.NewIdentityFromAccount(account)

	assert.Equal(t, account.ID.String(), identity.ID())
	assert.Equal(t, account.Email, identity.Email())
	assert.Equal(t, account.Name, identity.Name())
	assert.Equal(t, account.Role, identity.Role())
	assert.Equal(t, account.OrgID.String(), identity.OrganizationID())
	assert.Equal(t, "Demo Corp", identity.OrganizationName())
}
