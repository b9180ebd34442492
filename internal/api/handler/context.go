package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/metrics"
	"github.com/bhargav3929/myacademydask-sub000/internal/api/middleware"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
)

// callerFrom builds the caller from the values the Session and RBAC
// middleware put into the context. The uid must be present; the role may be
// empty and is checked by the service.
func callerFrom(c echo.Context) (domain.Caller, error) {
	uid, _ := c.Get(middleware.ContextUID).(string)
	if uid == "" {
		return domain.Caller{}, domain.ErrUnauthenticated
	}
	role, _ := c.Get(middleware.ContextRole).(string)
	return domain.Caller{UID: uid, Role: domain.Role(role)}, nil
}

func sessionFrom(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get(middleware.ContextSession).(*domain.Session)
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}

// bindAndValidate decodes the JSON body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidArgument)
	}
	return c.Validate(req)
}

// jsonFieldName makes validator messages use the JSON field names.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// observe counts a privileged operation by outcome and returns err unchanged.
func observe(operation string, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = "internal"
		if kind := domain.KindOf(err); kind != nil {
			outcome = strings.ReplaceAll(kind.Error(), " ", "_")
		}
	}
	metrics.PrivilegedOperationsTotal.WithLabelValues(operation, outcome).Inc()
	return err
}
