// Package csrf protects the login form and other state-changing routes with
// stateless double-submit tokens. Tokens are HMAC signed with a server key
// and bound to the requesting session, so no server side storage is needed.
package csrf

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-router"
)

var (
	ErrTokenMismatch    = errors.New("CSRF token mismatch")
	ErrTokenMissing     = errors.New("CSRF token missing")
	ErrTokenExpired     = errors.New("CSRF token expired")
	ErrSecureKeyMissing = errors.New("CSRF secure key required")
)

// DefaultTokenLength is the nonce length in bytes
const DefaultTokenLength = 32

// DefaultTemplateHelpersKey defines the context key used when merging CSRF template helpers.
const DefaultTemplateHelpersKey = "template_helpers"

// DefaultContextKey is the default key for storing CSRF tokens in context
const DefaultContextKey = "csrf_token"

// DefaultFormFieldName is the default name for the CSRF token form field
const DefaultFormFieldName = "_token"

// DefaultHeaderName is the default header name for CSRF tokens
const DefaultHeaderName = "X-CSRF-Token"

// Config defines the configuration for CSRF middleware
type Config struct {
	// Skip defines a function to skip middleware
	Skip func(router.Context) bool

	// TokenLength defines the nonce length of generated tokens
	TokenLength int

	// ContextKey defines the key for storing the token in context
	ContextKey string

	// FormFieldName defines the name of the form field containing the token
	FormFieldName string

	// HeaderName defines the header name for the token
	HeaderName string

	// TokenLookup defines where to look for the token
	// Format: "form:_token,header:X-CSRF-Token"
	TokenLookup string

	// ErrorHandler defines the error handler
	ErrorHandler router.ErrorHandler

	// SuccessHandler defines the success handler
	SuccessHandler router.HandlerFunc

	// SafeMethods defines HTTP methods that don't require CSRF protection
	SafeMethods []string

	// Expiration defines how long tokens remain valid
	Expiration time.Duration

	// SecureKey signs tokens, must be at least 32 bytes
	SecureKey []byte

	// DisableTemplateHelpers disables automatic template helper injection when true.
	DisableTemplateHelpers bool
	// TemplateHelpersKey defines the context key used when storing helper maps via LocalsMerge.
	TemplateHelpersKey string
}

// TokenExtractor defines a function to extract token from request
type TokenExtractor func(router.Context) (string, error)

// New creates a new CSRF middleware
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := configDefault(config...)

		return func(ctx router.Context) error {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return ctx.Next()
			}

			token, err := generateToken(ctx, cfg)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, token)
			ctx.Locals(cfg.ContextKey+"_field", cfg.FormFieldName)
			ctx.Locals(cfg.ContextKey+"_header", cfg.HeaderName)
			if !cfg.DisableTemplateHelpers {
				helpers := TemplateHelpers(ctx, cfg.ContextKey)
				ctx.LocalsMerge(cfg.TemplateHelpersKey, helpers)
			}

			// safe methods don't require validation
			method := strings.ToUpper(ctx.Method())
			if slices.Contains(cfg.SafeMethods, method) {
				return cfg.SuccessHandler(ctx)
			}

			received, err := extractToken(ctx, cfg)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			if received == "" {
				return cfg.ErrorHandler(ctx, ErrTokenMissing)
			}

			if err := validateToken(ctx, cfg, received); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// generateToken mints a token of the form base64(timestamp:nonce:session:sig)
// where sig is an HMAC-SHA256 over the first three parts.
func generateToken(ctx router.Context, cfg Config) (string, error) {
	if len(cfg.SecureKey) == 0 {
		return "", ErrSecureKeyMissing
	}

	nonce := make([]byte, cfg.TokenLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sessionKey := getSessionKey(ctx)
	timestamp := time.Now().UTC().Unix()
	payload := fmt.Sprintf("%d:%s:%s", timestamp, hex.EncodeToString(nonce), sessionKey)

	mac := hmac.New(sha256.New, cfg.SecureKey)
	mac.Write([]byte(payload))
	signature := mac.Sum(nil)

	token := fmt.Sprintf("%s:%s", payload, hex.EncodeToString(signature))
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

func validateToken(ctx router.Context, cfg Config, token string) error {
	if len(cfg.SecureKey) == 0 {
		return ErrSecureKeyMissing
	}

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrTokenMismatch
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 4 {
		return ErrTokenMismatch
	}

	timestampStr, nonceHex, sessionFromToken, signatureHex := parts[0], parts[1], parts[2], parts[3]

	timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
	if err != nil {
		return ErrTokenMismatch
	}

	if _, err := hex.DecodeString(nonceHex); err != nil {
		return ErrTokenMismatch
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		return ErrTokenMismatch
	}

	payload := strings.Join(parts[:3], ":")
	mac := hmac.New(sha256.New, cfg.SecureKey)
	mac.Write([]byte(payload))
	expectedSignature := mac.Sum(nil)

	if !hmac.Equal(signature, expectedSignature) {
		return ErrTokenMismatch
	}

	if subtle.ConstantTimeCompare([]byte(sessionFromToken), []byte(getSessionKey(ctx))) != 1 {
		return ErrTokenMismatch
	}

	if cfg.Expiration > 0 {
		expiresAt := time.Unix(timestamp, 0).Add(cfg.Expiration)
		if time.Now().UTC().After(expiresAt) {
			return ErrTokenExpired
		}
	}

	return nil
}

func extractToken(ctx router.Context, cfg Config) (string, error) {
	extractors := getExtractors(cfg.TokenLookup, cfg.FormFieldName, cfg.HeaderName)

	for _, extractor := range extractors {
		token, err := extractor(ctx)
		if token != "" && err == nil {
			return token, nil
		}
	}

	return "", nil
}

// getSessionKey binds the token to the caller. Authenticated requests use the
// session identifier, anonymous ones (the login form) fall back to the
// client IP.
func getSessionKey(ctx router.Context) string {
	if sessionID := ctx.Locals("session_id"); sessionID != nil {
		if id, ok := sessionID.(string); ok && id != "" {
			return "csrf_" + id
		}
	}

	if userID := ctx.Locals("user_id"); userID != nil {
		if id, ok := userID.(string); ok && id != "" {
			return "csrf_user_" + id
		}
	}

	return "csrf_ip_" + ctx.IP()
}

// getExtractors returns token extractors based on configuration
func getExtractors(tokenLookup, formField, header string) []TokenExtractor {
	var extractors []TokenExtractor

	if tokenLookup == "" {
		extractors = append(extractors,
			extractorFromForm(formField),
			extractorFromHeader(header),
		)
		return extractors
	}

	// Parse tokenLookup: "form:_token,header:X-CSRF-Token"
	parts := strings.Split(tokenLookup, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "form:") {
			field := strings.TrimPrefix(part, "form:")
			extractors = append(extractors, extractorFromForm(field))
		} else if strings.HasPrefix(part, "header:") {
			headerName := strings.TrimPrefix(part, "header:")
			extractors = append(extractors, extractorFromHeader(headerName))
		}
	}

	return extractors
}

// extractorFromForm extracts token from form data
func extractorFromForm(fieldName string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		return ctx.FormValue(fieldName), nil
	}
}

// extractorFromHeader extracts token from request header
func extractorFromHeader(headerName string) TokenExtractor {
	return func(ctx router.Context) (string, error) {
		return ctx.GetString(headerName, ""), nil
	}
}

// configDefault returns a default config
func configDefault(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenLength == 0 {
		cfg.TokenLength = DefaultTokenLength
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.FormFieldName == "" {
		cfg.FormFieldName = DefaultFormFieldName
	}

	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultHeaderName
	}

	if cfg.SafeMethods == nil {
		cfg.SafeMethods = []string{"GET", "HEAD", "OPTIONS", "TRACE"}
	}

	if cfg.Expiration == 0 {
		cfg.Expiration = 24 * time.Hour
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler(cfg)
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.TemplateHelpersKey == "" {
		cfg.TemplateHelpersKey = DefaultTemplateHelpersKey
	}

	cfg.SecureKey = initializeSecureKey(cfg.SecureKey)

	return cfg
}

func defaultErrorHandler(cfg Config) router.ErrorHandler {
	return func(ctx router.Context, err error) error {
		switch err {
		case ErrTokenMissing:
			return ctx.Status(router.StatusBadRequest).SendString("CSRF token missing")
		case ErrTokenMismatch:
			return ctx.Status(router.StatusForbidden).SendString("CSRF token mismatch")
		case ErrTokenExpired:
			return ctx.Status(router.StatusForbidden).SendString("CSRF token expired")
		case ErrSecureKeyMissing:
			return ctx.Status(router.StatusInternalServerError).SendString("CSRF configuration error")
		default:
			return ctx.Status(router.StatusInternalServerError).SendString("CSRF validation error")
		}
	}
}

func initializeSecureKey(current []byte) []byte {
	if len(current) > 0 {
		if len(current) < 32 {
			panic(fmt.Errorf("csrf: secure key must be at least 32 bytes, got %d", len(current)))
		}
		return current
	}
	// ephemeral key, tokens do not survive a restart
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		panic(fmt.Errorf("csrf: unable to initialize secure key: %w", err))
	}
	return key
}

// TemplateHelpers returns template helper values for rendering the token into
// forms and meta tags. The middleware merges these into the view context.
func TemplateHelpers(ctx router.Context, tokenKey string) map[string]any {
	if tokenKey == "" {
		tokenKey = DefaultContextKey
	}

	token := ""
	if value := ctx.Locals(tokenKey); value != nil {
		if str, ok := value.(string); ok {
			token = str
		}
	}

	fieldName := DefaultFormFieldName
	if raw := ctx.Locals(tokenKey + "_field"); raw != nil {
		if val, ok := raw.(string); ok && val != "" {
			fieldName = val
		}
	}

	headerName := DefaultHeaderName
	if raw := ctx.Locals(tokenKey + "_header"); raw != nil {
		if val, ok := raw.(string); ok && val != "" {
			headerName = val
		}
	}

	return map[string]any{
		"csrf_token":       token,
		"csrf_field":       `<input type="hidden" name="` + fieldName + `" value="` + token + `">`,
		"csrf_meta":        `<meta name="csrf-token" content="` + token + `">`,
		"csrf_header_name": headerName,
	}
}
