package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
)

// APIHandler exposes the same operations as the pages over JSON.
type APIHandler struct {
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Auth      service.Authenticator
	JWTSecret []byte
}

func (h *APIHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.get_products")

	products, err := h.Catalog.GetAll(ctx)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot load catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load catalog")
	}
	shown := service.Filter(products, c.QueryParam("q"))

	return c.JSON(http.StatusOK, map[string]any{
		"data": shown,
		"meta": map[string]any{
			"shown": len(shown),
			"total": len(products),
		},
	})
}

func (h *APIHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.get_product")

	id, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	prod, found, err := h.Catalog.FindByID(ctx, id)
	if err != nil {
		l.Error("get_product_failed", "status", 500, "reason", "cannot load catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load catalog")
	}
	if !found {
		l.Warn("get_product_failed", "status", 404, "reason", "product not found", "productID", id)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, prod)
}

func (h *APIHandler) cartResponse(c echo.Context, status int) error {
	ctx := c.Request().Context()
	lines, err := h.Cart.GetCart(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("get_cart_failed", "status", 500, "reason", "cannot load cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return c.JSON(status, CartResponse{
		Items:       lines,
		TotalItems:  service.TotalItems(lines),
		TotalAmount: service.TotalAmount(lines),
	})
}

func (h *APIHandler) GetCart(c echo.Context) error {
	return h.cartResponse(c, http.StatusOK)
}

func (h *APIHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.add_to_cart")

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		l.Warn("add_to_cart_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	added, err := h.Cart.AddItem(ctx, req.ProductID)
	if err != nil {
		l.Error("add_to_cart_failed", "status", 500, "reason", "cannot update cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
	}
	if !added {
		l.Warn("add_to_cart_failed", "status", 404, "reason", "product not found", "productID", req.ProductID)
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	l.Info("add_to_cart_success", "productID", req.ProductID)
	return h.cartResponse(c, http.StatusOK)
}

func (h *APIHandler) ChangeQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.change_quantity")

	id, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("change_quantity_failed", "status", 400, "reason", "id is not a positive integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	var req ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("change_quantity_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Cart.ChangeQuantity(ctx, id, req.Delta); err != nil {
		l.Error("change_quantity_failed", "status", 500, "reason", "cannot update cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
	}
	return h.cartResponse(c, http.StatusOK)
}

func (h *APIHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.remove_from_cart")

	id, ok := parseID(c.Param("id"))
	if !ok {
		l.Warn("remove_from_cart_failed", "status", 400, "reason", "id is not a positive integer", "id", c.Param("id"))
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	if err := h.Cart.RemoveItem(ctx, id); err != nil {
		l.Error("remove_from_cart_failed", "status", 500, "reason", "cannot update cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
	}
	return h.cartResponse(c, http.StatusOK)
}

func (h *APIHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.clear_cart")

	if err := h.Cart.Clear(ctx); err != nil {
		l.Error("clear_cart_failed", "status", 500, "reason", "cannot update cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update cart")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *APIHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.checkout")

	var customer service.Customer
	if err := c.Bind(&customer); err != nil {
		l.Warn("checkout_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	receipt, err := h.Cart.PlaceOrder(ctx, customer)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("checkout_failed", "status", 422, "reason", "missing customer details", "error", err)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "name, phone and address are required")
		}
		if errors.Is(err, service.ErrEmptyCart) {
			l.Warn("checkout_failed", "status", 422, "reason", "empty cart")
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "cart is empty")
		}
		l.Error("checkout_failed", "status", 500, "reason", "cannot place order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot place order")
	}

	l.Info("checkout_success", "reference", receipt.Reference)
	return c.JSON(http.StatusOK, receipt)
}

func (h *APIHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.admin_login")

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	username := strings.TrimSpace(req.Username)
	if !h.Auth.Authenticate(ctx, username, req.Password) {
		l.Warn("admin_login_failed", "status", 401, "reason", "invalid credentials")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password.")
	}

	tok, exp, err := tokens.SignAdmin(username, h.JWTSecret, time.Now())
	if err != nil {
		l.Error("admin_login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}
	c.SetCookie(tokens.CreateCookie(tokens.AdminCookie, tok, "/", exp, secureRequest(c)))

	l.Info("admin_login_success", "username", username)
	return c.JSON(http.StatusOK, LoginResponse{Token: tok, ExpiresAt: exp.Unix()})
}

func (h *APIHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.create_product")

	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Catalog.Add(ctx, req.Title, req.Category, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_failed", "status", 422, "reason", "invalid product", "error", err)
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		l.Error("create_product_failed", "status", 500, "reason", "cannot add product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product")
	}

	l.Info("create_product_success", "productID", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *APIHandler) ResetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "api.reset_products")

	if err := h.Catalog.ResetToDefaults(ctx); err != nil {
		l.Error("reset_products_failed", "status", 500, "reason", "cannot reset catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot reset catalog")
	}
	products, err := h.Catalog.GetAll(ctx)
	if err != nil {
		l.Error("reset_products_failed", "status", 500, "reason", "cannot load catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load catalog")
	}

	l.Info("reset_products_success")
	return c.JSON(http.StatusOK, map[string]any{"data": products})
}
