package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

type Middleware interface {
	Impersonate(c router.Context, identifier string) error
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
}

func GetRouterSession(c router.Context, key string) (*SessionObject, error) {
	cookie := c.Locals(key)
	if cookie == nil {
		return nil, ErrUnableToFindSession
	}

	user, ok := cookie.(*jwt.Token)
	if user == nil || !ok {
		return nil, ErrUnableToDecodeSession
	}

	claims, ok := user.Claims.(jwt.MapClaims)
	if claims == nil || !ok {
		return nil, ErrUnableToMapClaims
	}

	return sessionFromClaims(claims)
}

func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	app.
		Get(controller.Routes.Login,
			controller.LoginShow,
		).
		SetName("sign-in.get")

	app.
		Post(
			controller.Routes.Login,
			controller.LoginPost,
		).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.LogOut).SetName("sign-out.get")

	if controller.Health != nil {
		app.Get(controller.Routes.Health, controller.Health.Handler()).
			SetName("health.get")
	}
}

type AuthControllerRoutes struct {
	Login  string
	Logout string
	Health string
}

type AuthControllerViews struct {
	Login  string
	Logout string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Views        *AuthControllerViews
	Auther       HTTPAuthenticator
	Health       *HealthChecker
	LandingRoute string
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		LandingRoute: "/dashboard",
		Routes: &AuthControllerRoutes{
			Login:  "/login",
			Logout: "/logout",
			Health: "/api/health",
		},
		Views: &AuthControllerViews{
			Login:  "login",
			Logout: "logout",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	return c
}

func (a *AuthController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors":         nil,
		"record":         nil,
		CallbackURLParam: ctx.Query(CallbackURLParam, ""),
	})
}

// LoginRequest payload
type LoginRequest struct {
	Email      string `form:"email" json:"email"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

// GetIdentifier returns the account email
func (r LoginRequest) GetIdentifier() string {
	return r.Email
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// GetExtendedSession reports whether the session cookie should outlive the default
func (r LoginRequest) GetExtendedSession() bool {
	return r.RememberMe
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	errs := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Login, router.ViewContext{
			"errors": errs,
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			"errors": map[string]string{
				"authentication": MsgInvalidCredentials,
			},
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if err := a.Auther.Login(ctx, payload); err != nil {
		errs["authentication"] = UserFacingMessage(err)
		return ctx.Status(fiber.StatusUnauthorized).Render(a.Views.Login, router.ViewContext{
			"errors": errs,
			"record": payload,
		})
	}

	redirect := a.redirectAfterLogin(ctx)

	return ctx.Redirect(redirect, router.StatusSeeOther)
}

func (a *AuthController) LogOut(ctx router.Context) error {
	a.Auther.Logout(ctx)
	return ctx.Redirect(a.Routes.Login, router.StatusSeeOther)
}

func (a *AuthController) redirectAfterLogin(ctx router.Context) string {
	type callbackResolver interface {
		RedirectAfterLogin(ctx router.Context) string
	}

	if resolver, ok := a.Auther.(callbackResolver); ok {
		return resolver.RedirectAfterLogin(ctx)
	}

	return a.Auther.GetRedirect(ctx, a.LandingRoute)
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map for view rendering.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
