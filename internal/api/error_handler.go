package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

var kindStatus = map[error]int{
	domain.ErrUnauthenticated:    http.StatusUnauthorized,
	domain.ErrPermissionDenied:   http.StatusForbidden,
	domain.ErrInvalidArgument:    http.StatusBadRequest,
	domain.ErrNotFound:           http.StatusNotFound,
	domain.ErrAlreadyExists:      http.StatusConflict,
	domain.ErrFailedPrecondition: http.StatusPreconditionFailed,
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (404 from router, 405, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if kind := domain.KindOf(err); kind != nil {
		return kindStatus[kind], userMessage(err, kind)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// userMessage strips the operation context and the kind prefix from err, so
// "grant owner role: not found: account not found" becomes "account not found".
func userMessage(err error, kind error) string {
	msg := err.Error()
	prefix := kind.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	if strings.HasSuffix(msg, kind.Error()) {
		return kind.Error()
	}
	return msg
}
