package auth

import (
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/ragaiq/go-auth/middleware/jwtware"
)

type RouteAuthenticator struct {
	auth                   Authenticator
	cfg                    Config
	tokens                 TokenService
	cookieDuration         time.Duration
	extendedCookieDuration time.Duration
	Logger                 Logger
	AuthErrorHandler       func(c router.Context, err error) error // TODO: make functions
	ErrorHandler           func(c router.Context, err error) error // TODO: make functions
}

type tokenServiceProvider interface {
	TokenService() TokenService
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	extendedCookieDuration := cookieDuration
	if cfg.GetExtendedTokenDuration() > 0 {
		extendedCookieDuration = time.Duration(cfg.GetExtendedTokenDuration()) * time.Hour
	}

	a := &RouteAuthenticator{
		cfg:                    cfg,
		auth:                   auther,
		Logger:                 defLogger{},
		cookieDuration:         cookieDuration,
		extendedCookieDuration: extendedCookieDuration,
	}

	if provider, ok := auther.(tokenServiceProvider); ok {
		a.tokens = provider.TokenService()
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a RouteAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

func (a RouteAuthenticator) GetExtendedCookieDuration() time.Duration {
	return a.extendedCookieDuration
}

// Gate evaluates every request against the policy table. Requests without a
// valid session and requests below the required role get the failure mode the
// matching policy selects; everything else flows through with claims attached
// to the request context.
func (a *RouteAuthenticator) Gate(table *PolicyTable) router.MiddlewareFunc {
	extractors := jwtware.GetExtractors(a.cfg.GetTokenLookup(), a.cfg.GetAuthScheme())

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			claims := a.decodeRequest(ctx, extractors)

			decision := table.Evaluate(ctx.Path(), claims)

			switch decision.Outcome {
			case OutcomeLoginRedirect, OutcomeFallbackRedirect:
				a.Logger.Debug("Gate rejected request",
					"path", ctx.Path(),
					"redirect", decision.RedirectTo,
				)
				return ctx.Redirect(decision.RedirectTo, redirectStatus(ctx))
			case OutcomeUnauthorized:
				return ctx.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Authentication required",
				})
			}

			if claims != nil {
				ctx.Locals(a.cfg.GetContextKey(), claims)
				stdCtx := WithClaimsContext(ctx.Context(), claims)
				if actor := ActorContextFromClaims(claims); actor != nil {
					stdCtx = WithActorContext(stdCtx, actor)
				}
				ctx.SetContext(stdCtx)
			}

			return ctx.Next()
		}
	}
}

// decodeRequest extracts and validates the session token. Any failure,
// missing cookie, expired token, bad signature, yields nil claims so the
// gate treats the request as anonymous.
func (a *RouteAuthenticator) decodeRequest(ctx router.Context, extractors []jwtware.JWTExtractor) AuthClaims {
	if a.tokens == nil {
		return nil
	}

	raw, err := jwtware.ExtractRawTokenFromContext(ctx, extractors)
	if err != nil || raw == "" {
		return nil
	}

	return a.tokens.Decode(raw)
}

func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return jwtware.New(jwtware.Config{
			ErrorHandler: errorHandler,
			SigningKey: jwtware.SigningKey{
				Key:    []byte(cfg.GetSigningKey()),
				JWTAlg: cfg.GetSigningMethod(),
			},
			AuthScheme:      cfg.GetAuthScheme(),
			ContextKey:      cfg.GetContextKey(),
			TokenLookup:     cfg.GetTokenLookup(),
			TokenValidator:  jwtValidatorAdapter{a.tokens},
			ContextEnricher: ContextEnricherAdapter,
		})(hf)
	}
}

func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) error {
	token, err := a.auth.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	duration := a.cookieDuration
	if payload.GetExtendedSession() {
		duration = a.extendedCookieDuration
	}

	a.setCookieToken(ctx, token, duration)
	return nil
}

func (a *RouteAuthenticator) Logout(ctx router.Context) {
	a.cookieDel(ctx, a.cfg.GetContextKey())
}

func (a *RouteAuthenticator) MakeClientRouteAuthErrorHandler(optional bool) func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsTokenExpiredError(err) {
			richErr = ErrTokenExpired
		} else if IsMalformedError(err) {
			richErr = ErrTokenMalformed
		} else {
			richErr = errors.Wrap(err, errors.CategoryAuth, "Invalid authentication token").
				WithCode(errors.CodeUnauthorized)
		}

		if optional {
			a.Logger.Info("Optional auth failed, proceeding", "error", richErr.Message)
			return ctx.Next()
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

// RedirectAfterLogin resolves where a freshly signed-in browser should land.
// The callback parameter wins if it survives the same-origin check, then the
// rejected-route cookie, then the configured landing route.
func (a *RouteAuthenticator) RedirectAfterLogin(ctx router.Context) string {
	if candidate := ctx.Query(CallbackURLParam, ""); candidate != "" {
		target := SafeRedirect(a.cfg.GetBaseURL(), candidate)
		if target != a.cfg.GetBaseURL() {
			return target
		}
	}

	return a.GetRedirect(ctx, a.cfg.GetLandingRoute())
}

func (a *RouteAuthenticator) GetRedirect(ctx router.Context, def ...string) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		return def[0]
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) GetRedirectOrDefault(ctx router.Context) string {
	rejectedRoute := a.cfg.GetRejectedRouteKey()
	refererHeader := string(ctx.Referer())

	r := ctx.Cookies(rejectedRoute, refererHeader)
	if r == "" {
		r = a.cfg.GetRejectedRouteDefault()
	}
	a.cookieDel(ctx, rejectedRoute)
	return r
}

func (a *RouteAuthenticator) SetRedirect(ctx router.Context) {
	rejectedRoute := a.cfg.GetRejectedRouteKey()

	a.Logger.Info("Setting redirect cookie", "key", rejectedRoute, "path", ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) Impersonate(c router.Context, identifier string) error {
	token, err := a.auth.Impersonate(c.Context(), identifier)
	if err != nil {
		a.Logger.Error("Impersonate authentication error", "error", err)
		return err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return nil
}

func (a *RouteAuthenticator) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error, redirecting to login",
		"error", richErr.Message,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
	)

	a.SetRedirect(c)

	return c.Redirect(a.cfg.GetLoginRoute(), redirectStatus(c))
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return a.AuthErrorHandler(c, richErr)
	default:
		return c.Status(richErr.Code).Render("errors/500", router.ViewContext{
			"error": richErr,
		})
	}
}

// redirectStatus picks 302 for GET navigations and 303 for everything else so
// a redirected form post does not get replayed.
func redirectStatus(c router.Context) int {
	if c.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

// jwtValidatorAdapter bridges the auth TokenService to the jwtware validator
// contract.
type jwtValidatorAdapter struct {
	tokens TokenService
}

func (j jwtValidatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	if j.tokens == nil {
		return nil, ErrUnableToDecodeSession
	}

	claims, err := j.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	jwtClaims, ok := claims.(jwtware.AuthClaims)
	if !ok {
		return nil, ErrUnableToMapClaims
	}

	return jwtClaims, nil
}
