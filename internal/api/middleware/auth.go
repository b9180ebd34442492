package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// Context keys set by Session.
const (
	ContextSession = "session"
	ContextUID     = "uid"
	ContextRole    = "role"
)

// SessionCookie is the cookie carrying the session token for browser clients.
const SessionCookie = "__session"

// SessionVerifier decodes a raw session token and checks it was not revoked.
type SessionVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.Session, error)
}

// Session authenticates the request from a Bearer token or the session
// cookie and injects the session, uid and role claim into the context.
func Session(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := rawToken(c)
			if err != nil {
				return err
			}

			session, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				return err
			}

			c.Set(ContextSession, session)
			c.Set(ContextUID, session.UID)
			c.Set(ContextRole, string(domain.ParseRole(string(session.Claims.Role))))

			return next(c)
		}
	}
}

// rawToken prefers the Authorization header over the cookie.
func rawToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", domain.ErrUnauthenticated
		}
		return parts[1], nil
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", domain.ErrUnauthenticated
}

// SetSessionCookie stores token in the session cookie until expiresAt.
func SetSessionCookie(c echo.Context, token string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
