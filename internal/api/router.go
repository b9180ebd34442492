package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/handler"
	"github.com/bhargav3929/myacademydask-sub000/internal/api/middleware"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
	"github.com/bhargav3929/myacademydask-sub000/internal/infrastructure/http/handlers"
)

// RouterDeps are the collaborators the HTTP layer is built from.
type RouterDeps struct {
	Auth         ports.AuthService
	Accounts     ports.AccountService
	Profiles     ports.ProfileRepository
	Reconciler   ports.RoleReconciler
	Health       *handlers.HealthHandler
	WebRoot      string
	CookieSecure bool
	Log          zerolog.Logger
	// Registerer receives the HTTP metrics; nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "academy",
		Registerer: reg,
	}))

	// --- Health, metrics, docs (no auth required) ---
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(deps.Auth, deps.CookieSecure)
	ownerHandler := handler.NewOwnerHandler(deps.Accounts)
	adminHandler := handler.NewAdminHandler(deps.Accounts)
	session := middleware.Session(deps.Auth)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/refresh", authHandler.Refresh, session)
	auth.GET("/me", authHandler.Me, session)
	auth.POST("/sync-role", authHandler.SyncRole, session)

	// --- Owner routes ---
	owner := e.Group("/api/owner", session, middleware.RBAC(domain.RoleOwner))
	owner.POST("/stadiums", ownerHandler.CreateStadium)
	owner.GET("/stadiums", ownerHandler.ListStadiums)
	owner.POST("/coaches", ownerHandler.CreateCoach)

	// --- Super-admin routes ---
	admin := e.Group("/api/super-admin", session)
	superAdmin := middleware.RBAC(domain.RoleSuperAdmin)
	withFallback := middleware.RBACWithProfileFallback(domain.RoleSuperAdmin, deps.Profiles)
	admin.POST("/grant-owner", adminHandler.GrantOwner, superAdmin)
	admin.POST("/owners", adminHandler.CreateOwner, superAdmin)
	admin.GET("/owners", adminHandler.ListOwners, superAdmin)
	admin.POST("/owners/password", adminHandler.UpdateOwnerPassword, superAdmin)
	admin.POST("/owners/status", adminHandler.ToggleOwnerStatus, withFallback)
	admin.POST("/owners/credentials", adminHandler.UpdateOwnerCredentials, withFallback)

	// --- Front end ---
	if deps.WebRoot != "" {
		guard := middleware.PageGuard(middleware.DefaultPageRules(deps.CookieSecure), deps.Auth, deps.Reconciler, deps.Log)
		static := echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{Root: deps.WebRoot, HTML5: true})
		e.GET("/*", echo.NotFoundHandler, guard, static)
	}

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
