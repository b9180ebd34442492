package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/metrics"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// PageRules describes which front-end paths each role may open.
type PageRules struct {
	// PublicPrefixes are reachable without a session. "/" only matches itself.
	PublicPrefixes []string
	LoginPath      string
	// AuthPages redirect an already signed-in user to their landing page.
	AuthPages []string
	Allowed   map[domain.Role][]string
	Landing   map[domain.Role]string
	// CookieSecure is used when the guard clears a bad session cookie.
	CookieSecure bool
}

func DefaultPageRules(cookieSecure bool) PageRules {
	return PageRules{
		PublicPrefixes: []string{"/", "/login", "/signup", "/forgot-password", "/assets", "/favicon.ico"},
		LoginPath:      "/login",
		AuthPages:      []string{"/login", "/signup"},
		Allowed: map[domain.Role][]string{
			domain.RoleOwner:      {"/dashboard", "/stadiums", "/students", "/reports", "/settings"},
			domain.RoleCoach:      {"/coach"},
			domain.RoleSuperAdmin: {"/super-admin"},
		},
		Landing: map[domain.Role]string{
			domain.RoleOwner:      "/dashboard",
			domain.RoleCoach:      "/coach",
			domain.RoleSuperAdmin: "/super-admin",
		},
		CookieSecure: cookieSecure,
	}
}

func (r PageRules) isPublic(path string) bool {
	for _, p := range r.PublicPrefixes {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

func (r PageRules) isAuthPage(path string) bool {
	for _, p := range r.AuthPages {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

func (r PageRules) allows(role domain.Role, path string) bool {
	for _, p := range r.Allowed[role] {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole path segments: /coach matches /coach/x but not
// /coaches.
func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}

// PageGuard resolves the role of a browser navigation from the session cookie
// and allows the page or redirects.
//
// A cookie that fails verification is cleared. A verified session without a
// usable role claim triggers one reconciliation; when that yields no role the
// request is routed as anonymous and the cookie is kept.
func PageGuard(rules PageRules, verifier SessionVerifier, reconciler ports.RoleReconciler, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			public := rules.isPublic(path)

			anonymous := func() error {
				if public {
					metrics.RouteDecisionsTotal.WithLabelValues("public").Inc()
					return next(c)
				}
				metrics.RouteDecisionsTotal.WithLabelValues("redirect_login").Inc()
				return c.Redirect(http.StatusFound, rules.LoginPath)
			}

			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return anonymous()
			}

			ctx := c.Request().Context()
			session, err := verifier.Verify(ctx, cookie.Value)
			if err != nil {
				log.Debug().Err(err).Str("path", path).Msg("session cookie rejected")
				ClearSessionCookie(c, rules.CookieSecure)
				return anonymous()
			}

			role := resolveRole(ctx, session, reconciler, log)
			if role == "" {
				return anonymous()
			}

			landing := rules.Landing[role]
			switch {
			case rules.isAuthPage(path):
				metrics.RouteDecisionsTotal.WithLabelValues("redirect_landing").Inc()
				return c.Redirect(http.StatusFound, landing)
			case public || rules.allows(role, path):
				metrics.RouteDecisionsTotal.WithLabelValues("allow").Inc()
				return next(c)
			default:
				metrics.RouteDecisionsTotal.WithLabelValues("redirect_landing").Inc()
				return c.Redirect(http.StatusFound, landing)
			}
		}
	}
}

func resolveRole(ctx context.Context, session *domain.Session, reconciler ports.RoleReconciler, log zerolog.Logger) domain.Role {
	if role := domain.ParseRole(string(session.Claims.Role)); role != "" {
		return role
	}

	res, err := reconciler.Reconcile(ctx, session.UID)
	if err != nil {
		log.Warn().Err(err).Str("uid", session.UID).Msg("role fallback failed")
		return ""
	}
	return domain.ParseRole(string(res.Role))
}
