package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// RBAC enforces role-based access control on the role claim set by Session.
func RBAC(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid, _ := c.Get(ContextUID).(string); uid == "" {
				return domain.ErrUnauthenticated
			}
			if claimed, _ := c.Get(ContextRole).(string); domain.Role(claimed) != role {
				return domain.RoleRequiredError(role)
			}
			return next(c)
		}
	}
}

// RBACWithProfileFallback is RBAC for sessions whose token may predate the
// caller's role: when the role claim is missing it reads the caller's profile
// once and uses the role stored there.
func RBACWithProfileFallback(role domain.Role, profiles ports.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get(ContextUID).(string)
			if uid == "" {
				return domain.ErrUnauthenticated
			}

			claimed, _ := c.Get(ContextRole).(string)
			if claimed == "" {
				profile, err := profiles.Get(c.Request().Context(), uid)
				switch {
				case err == nil:
					claimed = string(domain.ParseRole(string(profile.Role)))
				case !errors.Is(err, domain.ErrProfileNotFound):
					return err
				}
				c.Set(ContextRole, claimed)
			}

			if domain.Role(claimed) != role {
				return domain.RoleRequiredError(role)
			}
			return next(c)
		}
	}
}
