package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/views"
)

// PageHandler serves the server-rendered storefront pages.
type PageHandler struct {
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Auth      service.Authenticator
	JWTSecret []byte
}

func (h *PageHandler) layout(c echo.Context, title, active string, notice *views.Notice) (views.Layout, error) {
	count, err := h.Cart.Count(c.Request().Context())
	if err != nil {
		return views.Layout{}, err
	}
	return views.Layout{
		Title:     title,
		Active:    active,
		CartCount: count,
		CSRF:      csrf.Token(c),
		Notice:    notice,
	}, nil
}

func internalError(c echo.Context, handler, reason string, err error) error {
	logging.FromContext(c.Request().Context()).Error(handler+"_failed", "status", 500, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, reason)
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func secureRequest(c echo.Context) bool {
	return c.Scheme() == "https"
}
