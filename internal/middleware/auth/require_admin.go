package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mindstore/backoffice/internal/models"
	"github.com/mindstore/backoffice/pkg/tokens"
)

const (
	callerIDKey = "callerID"
	roleKey     = "role"
)

// Middleware validates HS256 access tokens issued by the auth service
// and guards the back-office routes.
type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := tokenFromRequest(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if claims.Role != models.RoleAdminName {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}

		if id, err := strconv.ParseUint(claims.Subject, 10, 64); err == nil {
			c.Set(callerIDKey, uint(id))
		}
		c.Set(roleKey, claims.Role)

		return next(c)
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if after, ok := strings.CutPrefix(h, "Bearer "); ok {
		return after
	}
	return ""
}

// CallerID returns the authenticated admin's id, zero when the token
// carried no usable subject.
func CallerID(c echo.Context) uint {
	if v, ok := c.Get(callerIDKey).(uint); ok {
		return v
	}
	return 0
}
