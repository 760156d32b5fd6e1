package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/views"
)

func (h *PageHandler) AdminPage(c echo.Context) error {
	return h.renderAdmin(c, http.StatusOK, nil, views.AdminForm{}, "")
}

func (h *PageHandler) renderAdmin(c echo.Context, status int, notice *views.Notice, form views.AdminForm, loginUser string) error {
	ctx := c.Request().Context()

	layout, err := h.layout(c, "Admin", "admin", notice)
	if err != nil {
		return internalError(c, "admin_page", "cannot load cart", err)
	}
	data := views.AdminData{Layout: layout, LoginUsername: loginUser, Form: form}

	claims, err := authmw.AdminFromRequest(c, h.JWTSecret)
	if err == nil {
		products, err := h.Catalog.GetAll(ctx)
		if err != nil {
			return internalError(c, "admin_page", "cannot load catalog", err)
		}
		data.LoggedIn = true
		data.Username = claims.Subject
		data.Products = views.AdminProducts(products)
	}

	return c.Render(status, "admin", data)
}

func (h *PageHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "page.admin_login")

	username := strings.TrimSpace(c.FormValue("username"))
	password := strings.TrimSpace(c.FormValue("password"))

	if !h.Auth.Authenticate(ctx, username, password) {
		l.Warn("admin_login_failed", "status", 401, "reason", "invalid credentials")
		return h.renderAdmin(c, http.StatusUnauthorized, views.Error("Invalid username or password."), views.AdminForm{}, username)
	}

	tok, exp, err := tokens.SignAdmin(username, h.JWTSecret, time.Now())
	if err != nil {
		return internalError(c, "admin_login", "cannot sign token", err)
	}
	c.SetCookie(tokens.CreateCookie(tokens.AdminCookie, tok, "/", exp, secureRequest(c)))

	l.Info("admin_login_success", "username", username)
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *PageHandler) Logout(c echo.Context) error {
	c.SetCookie(tokens.DeleteCookie(tokens.AdminCookie, "/", secureRequest(c)))
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func (h *PageHandler) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "page.admin_add_product")

	if _, err := authmw.AdminFromRequest(c, h.JWTSecret); err != nil {
		l.Warn("admin_add_product_failed", "status", 401, "reason", "not logged in", "error", err)
		return h.renderAdmin(c, http.StatusUnauthorized, views.Error("Please log in as admin first."), views.AdminForm{}, "")
	}

	form := views.AdminForm{
		Title:    strings.TrimSpace(c.FormValue("title")),
		Category: strings.TrimSpace(c.FormValue("category")),
		Price:    strings.TrimSpace(c.FormValue("price")),
	}

	if form.Title == "" || form.Price == "" {
		l.Warn("admin_add_product_failed", "status", 422, "reason", "missing title or price")
		return h.renderAdmin(c, http.StatusUnprocessableEntity, views.Error("Please enter at least product name and price."), form, "")
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil || !models.ValidPrice(price) {
		l.Warn("admin_add_product_failed", "status", 422, "reason", "invalid price", "price", form.Price)
		return h.renderAdmin(c, http.StatusUnprocessableEntity, views.Error("Please enter a valid price."), form, "")
	}

	prod, err := h.Catalog.Add(ctx, form.Title, form.Category, price)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("admin_add_product_failed", "status", 422, "reason", "rejected by catalog", "error", err)
			return h.renderAdmin(c, http.StatusUnprocessableEntity, views.Error("Please enter at least product name and price."), form, "")
		}
		return internalError(c, "admin_add_product", "cannot add product", err)
	}

	l.Info("admin_add_product_success", "productID", prod.ID)
	return h.renderAdmin(c, http.StatusOK, views.Success("Product added successfully! Refresh Home page to see it."), views.AdminForm{}, "")
}

func (h *PageHandler) ResetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "page.admin_reset")

	if _, err := authmw.AdminFromRequest(c, h.JWTSecret); err != nil {
		l.Warn("admin_reset_failed", "status", 401, "reason", "not logged in", "error", err)
		return h.renderAdmin(c, http.StatusUnauthorized, views.Error("Please log in as admin first."), views.AdminForm{}, "")
	}

	if err := h.Catalog.ResetToDefaults(ctx); err != nil {
		return internalError(c, "admin_reset", "cannot reset catalog", err)
	}

	l.Info("admin_reset_success")
	return h.renderAdmin(c, http.StatusOK, views.Success("Products reset to default list."), views.AdminForm{}, "")
}
