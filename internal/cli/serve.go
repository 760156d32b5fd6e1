package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/storefront/internal/handlers"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/service"
	httpserver "github.com/Skotchmaster/storefront/internal/transport/http"
	"github.com/Skotchmaster/storefront/internal/views"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error("close_failed", "error", err)
		}
	}()

	e, err := newEcho(a)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server_listening", "addr", srv.Addr, "driver", a.cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server_shutdown_failed", "error", err)
	}
	a.logger.Info("shutdown_complete")
	return nil
}

func newEcho(a *app) (*echo.Echo, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	auth, err := service.NewStaticAuthenticator(a.cfg.AdminUsername, a.cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(a.logger))

	httpserver.Register(e, &httpserver.Deps{
		Pages:       &handlers.PageHandler{Catalog: a.catalog, Cart: a.cart, Auth: auth, JWTSecret: a.cfg.JWTSecret},
		API:         &handlers.APIHandler{Catalog: a.catalog, Cart: a.cart, Auth: auth, JWTSecret: a.cfg.JWTSecret},
		Store:       a.store,
		JWTSecret:   a.cfg.JWTSecret,
		CSRFEnabled: a.cfg.CSRFEnabled,
	})
	return e, nil
}
