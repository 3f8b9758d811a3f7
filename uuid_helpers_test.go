package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureTokenID(t *testing.T) {
	t.Run("assigns jti when empty", func(t *testing.T) {
		claims := &jwt.RegisteredClaims{}
		ensureTokenID(claims)
		require.NotEmpty(t, claims.ID)
	})

	t.Run("preserves existing jti", func(t *testing.T) {
		claims := &jwt.RegisteredClaims{ID: "existing-id"}
		ensureTokenID(claims)
		assert.Equal(t, "existing-id", claims.ID)
	})

	t.Run("nil claims is a no-op", func(t *testing.T) {
		ensureTokenID(nil)
	})
}

func TestHasUserUUID(t *testing.T) {
	assert.False(t, HasUserUUID(nil))
	assert.False(t, HasUserUUID(&SessionObject{UserID: "not-a-uuid"}))
	assert.True(t, HasUserUUID(&SessionObject{UserID: "11111111-2222-3333-4444-555555555555"}))
}
