package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/handlers"
	"github.com/Skotchmaster/storefront/internal/logging"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Pages       *handlers.PageHandler
	API         *handlers.APIHandler
	Store       Pinger
	JWTSecret   []byte
	CSRFEnabled bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			logging.FromContext(ctx).Warn("ready_check_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	var pageMW []echo.MiddlewareFunc
	if d.CSRFEnabled {
		pageMW = append(pageMW, csrf.Middleware(csrf.DefaultConfig()))
	}
	pages := e.Group("", pageMW...)

	pages.GET("/", d.Pages.Home)
	pages.POST("/cart/items", d.Pages.AddToCart)
	pages.GET("/cart", d.Pages.CartPage)
	pages.POST("/cart/items/:id/increment", d.Pages.Increment)
	pages.POST("/cart/items/:id/decrement", d.Pages.Decrement)
	pages.POST("/cart/items/:id/remove", d.Pages.Remove)
	pages.POST("/cart/checkout", d.Pages.Checkout)

	pages.GET("/admin", d.Pages.AdminPage)
	pages.POST("/admin/login", d.Pages.Login)
	pages.POST("/admin/logout", d.Pages.Logout)
	pages.POST("/admin/products", d.Pages.AddProduct)
	pages.POST("/admin/reset", d.Pages.ResetProducts)

	v1 := e.Group("/api/v1")

	v1.GET("/products", d.API.GetProducts)
	v1.GET("/products/:id", d.API.GetProduct)

	cart := v1.Group("/cart")
	cart.GET("", d.API.GetCart)
	cart.POST("", d.API.AddToCart)
	cart.DELETE("", d.API.ClearCart)
	cart.POST("/checkout", d.API.Checkout)
	cart.PATCH("/:id", d.API.ChangeQuantity)
	cart.DELETE("/:id", d.API.RemoveFromCart)

	v1.POST("/admin/login", d.API.Login)
	admin := v1.Group("/admin", authmw.RequireAdmin(d.JWTSecret))
	admin.POST("/products", d.API.CreateProduct)
	admin.POST("/reset", d.API.ResetProducts)
}
