package cli

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/kv"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/storage"
)

// app is the wired object graph shared by every command.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	kv       kv.Store
	store    *storage.Adapter
	producer *mykafka.Producer
	catalog  *service.CatalogService
	cart     *service.CartService
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	if len(cfg.JWTSecret) == 0 {
		cfg.JWTSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.JWTSecret); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		logger.Warn("jwt_secret_generated", "reason", "JWT_SECRET is not set; admin sessions end on restart")
	}

	store, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		kv:     store,
		store:  storage.New(store),
	}

	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		a.producer = p
		publisher = p
	}

	a.catalog = &service.CatalogService{Store: a.store, Publisher: publisher}
	a.cart = &service.CartService{Store: a.store, Catalog: a.catalog, Publisher: publisher}

	logger.Debug("app_opened", "driver", cfg.StoreDriver, "kafka", a.producer != nil)
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka close: %w", err))
		}
	}
	if err := a.kv.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}
	return errors.Join(errs...)
}

func (a *app) context(ctx context.Context) context.Context {
	return logging.IntoContext(ctx, a.logger)
}
