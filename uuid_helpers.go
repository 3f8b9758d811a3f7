package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ensureTokenID assigns a fresh jti when the claims carry none.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims == nil {
		return
	}
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

// HasUserUUID reports whether Session.GetUserUUID will succeed.
func HasUserUUID(session Session) bool {
	if session == nil {
		return false
	}
	_, err := session.GetUserUUID()
	return err == nil
}
