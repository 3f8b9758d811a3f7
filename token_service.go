package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService signs, validates, and rewrites session tokens.
type TokenService interface {
	Generate(identity Identity) (string, error)
	SignClaims(claims *SessionClaims) (string, error)
	Validate(tokenString string) (AuthClaims, error)
	Decode(tokenString string) AuthClaims
	Update(tokenString string, patch SessionPatch) (string, error)
}

// SessionPatch describes the mutable claim fields of an existing session.
// Nil fields are left unchanged. Subject, organization id, and the token
// lifetime can never be patched.
type SessionPatch struct {
	Email            *string
	Name             *string
	Role             *Role
	OrganizationName *string
}

func (p SessionPatch) isEmpty() bool {
	return p.Email == nil && p.Name == nil && p.Role == nil && p.OrganizationName == nil
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

// NewTokenService creates a new TokenService instance
func NewTokenService(signingKey []byte, tokenExpiration int, issuer string, audience jwt.ClaimStrings, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	if tokenExpiration <= 0 {
		tokenExpiration = DefaultTokenExpiration
	}
	return &TokenServiceImpl{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		audience:        audience,
		logger:          logger,
	}
}

// Generate creates a session JWT for the given identity
func (ts *TokenServiceImpl) Generate(identity Identity) (string, error) {
	now := time.Now()
	claims := newSessionClaims(identity)
	claims.RegisteredClaims.Issuer = ts.issuer
	claims.RegisteredClaims.Audience = ts.audience
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Hour))

	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

// SignClaims signs arbitrary JWT claims using the configured signing key.
func (ts *TokenServiceImpl) SignClaims(claims *SessionClaims) (string, error) {
	if claims == nil {
		return "", errors.New("claims must not be nil", errors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Validate parses and validates a token string, returning structured claims
func (ts *TokenServiceImpl) Validate(tokenString string) (AuthClaims, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Decode validates a token string and returns its claims, or nil when the
// token is absent, expired, tampered with, or otherwise invalid. Route gating
// treats every failure the same way, so no error detail survives.
func (ts *TokenServiceImpl) Decode(tokenString string) AuthClaims {
	if tokenString == "" {
		return nil
	}
	claims, err := ts.parse(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

// Update re-signs an existing session with patched mutable claims. The
// expiration and issue time carry over unchanged so a rewrite never extends
// the session lifetime. The token id is rotated.
func (ts *TokenServiceImpl) Update(tokenString string, patch SessionPatch) (string, error) {
	claims, err := ts.parse(tokenString)
	if err != nil {
		return "", err
	}

	snap := captureImmutableClaims(claims)

	if patch.Email != nil {
		claims.UserMail = *patch.Email
	}
	if patch.Name != nil {
		claims.Name = *patch.Name
	}
	if patch.Role != nil {
		claims.UserRole = *patch.Role
	}
	if patch.OrganizationName != nil {
		claims.OrgName = *patch.OrganizationName
	}

	if err := snap.validate(claims); err != nil {
		return "", err
	}

	claims.RegisteredClaims.ID = ""
	ensureTokenID(&claims.RegisteredClaims)

	return ts.SignClaims(claims)
}

func (ts *TokenServiceImpl) parse(tokenString string) (*SessionClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("TokenService validate could not decode or validate claims")
	return nil, ErrUnableToDecodeSession
}

func (ts *TokenServiceImpl) tokenDefaults() tokenDefaults {
	var aud jwt.ClaimStrings
	if len(ts.audience) > 0 {
		aud = make(jwt.ClaimStrings, len(ts.audience))
		copy(aud, ts.audience)
	}

	return tokenDefaults{
		issuer:   ts.issuer,
		audience: aud,
		ttl:      time.Duration(ts.tokenExpiration) * time.Hour,
	}
}
