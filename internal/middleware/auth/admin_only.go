package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

var ErrNoToken = errors.New("missing admin token")

// AdminFromRequest reads the admin token from the session cookie, falling
// back to a bearer Authorization header for API clients.
func AdminFromRequest(c echo.Context, secret []byte) (*tokens.AdminClaims, error) {
	raw := ""
	if ck, err := c.Cookie(tokens.AdminCookie); err == nil {
		raw = ck.Value
	}
	if raw == "" {
		if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}
	if raw == "" {
		return nil, ErrNoToken
	}
	return tokens.ParseAdmin(raw, secret)
}

func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "require_admin")

			claims, err := AdminFromRequest(c, secret)
			if err != nil {
				if errors.Is(err, ErrNoToken) {
					l.Warn("admin_rejected", "status", 401, "reason", "missing token")
					return echo.NewHTTPError(http.StatusUnauthorized, "missing admin token")
				}
				l.Warn("admin_rejected", "status", 401, "reason", "invalid token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin token")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
