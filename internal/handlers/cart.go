package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/views"
)

func (h *PageHandler) CartPage(c echo.Context) error {
	return h.renderCart(c, http.StatusOK, nil, service.Customer{})
}

func (h *PageHandler) renderCart(c echo.Context, status int, notice *views.Notice, customer service.Customer) error {
	ctx := c.Request().Context()

	lines, err := h.Cart.GetCart(ctx)
	if err != nil {
		return internalError(c, "cart_page", "cannot load cart", err)
	}
	products, err := h.Catalog.GetAll(ctx)
	if err != nil {
		return internalError(c, "cart_page", "cannot load catalog", err)
	}
	layout, err := h.layout(c, "Cart", "cart", notice)
	if err != nil {
		return internalError(c, "cart_page", "cannot load cart", err)
	}

	return c.Render(status, "cart", views.CartData{
		Layout:   layout,
		Cart:     views.Cart(lines, products),
		Customer: customer,
	})
}

func (h *PageHandler) Increment(c echo.Context) error {
	return h.changeLine(c, "increment", func(id int) error {
		return h.Cart.ChangeQuantity(c.Request().Context(), id, 1)
	})
}

func (h *PageHandler) Decrement(c echo.Context) error {
	return h.changeLine(c, "decrement", func(id int) error {
		return h.Cart.ChangeQuantity(c.Request().Context(), id, -1)
	})
}

func (h *PageHandler) Remove(c echo.Context) error {
	return h.changeLine(c, "remove", func(id int) error {
		return h.Cart.RemoveItem(c.Request().Context(), id)
	})
}

func (h *PageHandler) changeLine(c echo.Context, action string, apply func(id int) error) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "page.cart_"+action)

	id, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("cart_"+action+"_failed", "status", 400, "reason", "id is not a positive integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := apply(id); err != nil {
		return internalError(c, "cart_"+action, "cannot update cart", err)
	}
	return c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *PageHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "page.checkout")

	customer := service.Customer{
		Name:    c.FormValue("name"),
		Phone:   c.FormValue("phone"),
		Address: c.FormValue("address"),
	}

	receipt, err := h.Cart.PlaceOrder(ctx, customer)
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn("checkout_failed", "status", 422, "reason", "missing customer details")
		return h.renderCart(c, http.StatusUnprocessableEntity,
			views.Error("Please fill all customer details before placing the order."), customer)
	case errors.Is(err, service.ErrEmptyCart):
		l.Warn("checkout_failed", "status", 422, "reason", "empty cart")
		return h.renderCart(c, http.StatusUnprocessableEntity, views.Error("Your cart is empty."), customer)
	case err != nil:
		return internalError(c, "checkout", "cannot place order", err)
	}

	msg := fmt.Sprintf("Thank you, %s! Your demo order has been placed successfully.", receipt.Name)
	return h.renderCart(c, http.StatusOK, views.Success(msg), service.Customer{})
}
