package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/views"
)

const noticeAdded = "added"

func (h *PageHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Catalog.GetAll(ctx)
	if err != nil {
		return internalError(c, "home", "cannot load catalog", err)
	}

	var notice *views.Notice
	if c.QueryParam("notice") == noticeAdded {
		notice = views.Success("Product added to cart!")
	}

	layout, err := h.layout(c, "Home", "home", notice)
	if err != nil {
		return internalError(c, "home", "cannot load cart", err)
	}

	return c.Render(http.StatusOK, "home", views.HomeData{
		Layout:  layout,
		Catalog: views.Catalog(products, c.QueryParam("q")),
	})
}

// AddToCart handles both card buttons: Add to Cart returns to the catalog,
// Buy Now continues to the cart.
func (h *PageHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "page.add_to_cart")

	id, ok := parseID(c.FormValue("id"))
	if !ok {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "id is not a positive integer", "id", c.FormValue("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	added, err := h.Cart.AddItem(ctx, id)
	if err != nil {
		return internalError(c, "add_to_cart", "cannot update cart", err)
	}

	if c.FormValue("buy") == "1" {
		return c.Redirect(http.StatusSeeOther, "/cart")
	}
	if !added {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Redirect(http.StatusSeeOther, "/?notice="+noticeAdded)
}
