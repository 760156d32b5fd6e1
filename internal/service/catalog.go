package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/storage"
)

type CatalogService struct {
	Store     *storage.Adapter
	Publisher EventPublisher

	mu sync.Mutex
}

// GetAll returns the stored catalog in insertion order, seeding the store
// with the default products when nothing usable is stored yet.
func (s *CatalogService) GetAll(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrSeed(ctx)
}

func (s *CatalogService) loadOrSeed(ctx context.Context) ([]models.Product, error) {
	products, found, err := s.Store.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return products, nil
	}

	defaults := DefaultProducts()
	if err := s.Store.SaveProducts(ctx, defaults); err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Info("catalog_seeded", "products", len(defaults))
	return defaults, nil
}

func (s *CatalogService) FindByID(ctx context.Context, id int) (models.Product, bool, error) {
	products, err := s.GetAll(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}

func (s *CatalogService) Add(ctx context.Context, title, category string, price float64) (models.Product, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	if title == "" {
		return models.Product{}, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if !models.ValidPrice(price) {
		return models.Product{}, fmt.Errorf("price must be a positive number: %w", ErrValidation)
	}
	if category == "" {
		category = models.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadOrSeed(ctx)
	if err != nil {
		return models.Product{}, err
	}

	prod := models.Product{
		ID:       nextID(products),
		Title:    title,
		Category: category,
		Price:    price,
	}
	products = append(products, prod)
	if err := s.Store.SaveProducts(ctx, products); err != nil {
		return models.Product{}, err
	}

	publish(ctx, s.Publisher, mykafka.ProductEvents, "catalog", map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"title":     prod.Title,
	})
	return prod, nil
}

// ResetToDefaults drops every admin-added product.
func (s *CatalogService) ResetToDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Store.SaveProducts(ctx, DefaultProducts()); err != nil {
		return err
	}

	publish(ctx, s.Publisher, mykafka.ProductEvents, "catalog", map[string]any{
		"type": "catalog_reset",
	})
	return nil
}

func nextID(products []models.Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// Filter keeps products whose title or category contains text, ignoring case.
// Blank text keeps everything.
func Filter(products []models.Product, text string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}
