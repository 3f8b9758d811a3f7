package auth

import (
	"github.com/goliatone/go-errors"
)

var (
	// ErrMissingCredentials is returned when the login payload has an empty
	// identifier or password.
	ErrMissingCredentials = errors.New("missing credentials", errors.CategoryAuth).
				WithTextCode("MISSING_CREDENTIALS").
				WithCode(errors.CodeUnauthorized)

	// ErrInvalidCredentials covers both unknown accounts and password
	// mismatches; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
				WithTextCode("INVALID_CREDENTIALS").
				WithCode(errors.CodeUnauthorized)

	// ErrAccountDisabled is returned for a correct password on a
	// deactivated account.
	ErrAccountDisabled = errors.New("account disabled", errors.CategoryAuth).
				WithTextCode("ACCOUNT_DISABLED").
				WithCode(errors.CodeUnauthorized)

	// ErrVerificationUnavailable signals an infrastructure failure during
	// credential verification, distinct from a rejection.
	ErrVerificationUnavailable = errors.New("credential verification unavailable", errors.CategoryInternal).
					WithTextCode("VERIFICATION_UNAVAILABLE").
					WithCode(errors.CodeInternal)

	ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(errors.CodeUnauthorized)

	ErrTokenMalformed = errors.New("session token malformed", errors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED").
				WithCode(errors.CodeUnauthorized)

	ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
					WithTextCode("SESSION_DECODE_FAILED").
					WithCode(errors.CodeUnauthorized)

	ErrUnableToFindSession = errors.New("unable to find session in context", errors.CategoryAuth).
				WithTextCode("SESSION_NOT_FOUND").
				WithCode(errors.CodeUnauthorized)

	ErrUnableToParseData = errors.New("unable to parse session data", errors.CategoryAuth).
				WithTextCode("SESSION_PARSE_FAILED").
				WithCode(errors.CodeUnauthorized)

	ErrUnableToMapClaims = errors.New("unable to map token claims", errors.CategoryAuth).
				WithTextCode("CLAIMS_MAPPING_FAILED").
				WithCode(errors.CodeUnauthorized)

	ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
				WithTextCode("IDENTITY_NOT_FOUND").
				WithCode(errors.CodeUnauthorized)

	ErrNoEmptyString = errors.New("value should not be an empty string", errors.CategoryBadInput).
				WithTextCode("EMPTY_STRING").
				WithCode(errors.CodeBadRequest)

	ErrMismatchedHashAndPassword = errors.New("hash and password mismatch", errors.CategoryAuth).
					WithTextCode("PASSWORD_MISMATCH").
					WithCode(errors.CodeUnauthorized)

	// ErrImmutableClaimMutation is returned when a session refresh attempts
	// to change the subject or organization of an existing session.
	ErrImmutableClaimMutation = errors.New("immutable claim cannot be changed", errors.CategoryBadInput).
					WithTextCode("IMMUTABLE_CLAIM").
					WithCode(errors.CodeBadRequest)
)

// User facing messages are intentionally generic. All credential rejections
// collapse to the same string so the login form cannot be used to probe for
// registered emails.
const (
	MsgInvalidCredentials  = "Ungültige Anmeldedaten"
	MsgAuthenticationError = "Ein Fehler ist aufgetreten. Bitte versuchen Sie es erneut."
)

// UserFacingMessage maps an authentication error to the message shown on the
// login form.
func UserFacingMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountDisabled):
		return MsgInvalidCredentials
	default:
		return MsgAuthenticationError
	}
}

// IsTokenExpiredError checks if the given error is a token expiration error
func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsMalformedError checks if the given error indicates an undecodable token
func IsMalformedError(err error) bool {
	return errors.Is(err, ErrTokenMalformed)
}
