package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mindstore/backoffice/internal/apperr"
	"github.com/mindstore/backoffice/pkg/logging"
)

// httpError translates a service failure into the HTTP response.
// Conditions keep their message; anything unexpected becomes a bare 500.
func httpError(c echo.Context, op string, err error) error {
	status := apperr.HTTPStatus(err)
	l := logging.FromContext(c.Request().Context()).With("handler", op)

	if status >= http.StatusInternalServerError {
		l.Error(op+"_failed", "status", status, "error", err)
		return echo.NewHTTPError(status, "internal error")
	}

	l.Warn(op+"_failed", "status", status, "reason", err.Error())
	return echo.NewHTTPError(status, err.Error())
}
