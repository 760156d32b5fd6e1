// Package storage is the only place that knows how the catalog and the cart
// are laid out in the key-value store. Stored text that does not parse is
// dealt with here and never reaches the services.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/kv"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	ProductsKey = "srf_products"
	CartKey     = "srf_cart"
)

type Adapter struct {
	KV kv.Store
}

func New(store kv.Store) *Adapter {
	return &Adapter{KV: store}
}

// Read decodes the JSON value under key into dst. found is false when the key
// is missing or its value is not valid JSON for dst.
func (a *Adapter) Read(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := a.KV.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logging.FromContext(ctx).Warn("stored_value_malformed", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (a *Adapter) Write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.KV.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// LoadProducts returns found=false when nothing usable is stored: no record,
// unparsable text, an invalid product, or a repeated id.
func (a *Adapter) LoadProducts(ctx context.Context) ([]models.Product, bool, error) {
	var products []models.Product
	found, err := a.Read(ctx, ProductsKey, &products)
	if err != nil || !found {
		return nil, false, err
	}
	if products == nil {
		logging.FromContext(ctx).Warn("stored_value_malformed", "key", ProductsKey, "reason", "null catalog")
		return nil, false, nil
	}

	seen := make(map[int]struct{}, len(products))
	for i := range products {
		p := &products[i]
		if err := p.Validate(); err != nil {
			logging.FromContext(ctx).Warn("stored_value_malformed", "key", ProductsKey, "reason", "invalid product", "error", err)
			return nil, false, nil
		}
		if _, dup := seen[p.ID]; dup {
			logging.FromContext(ctx).Warn("stored_value_malformed", "key", ProductsKey, "reason", "duplicate id", "id", p.ID)
			return nil, false, nil
		}
		seen[p.ID] = struct{}{}
		if strings.TrimSpace(p.Category) == "" {
			p.Category = models.DefaultCategory
		}
	}

	return products, true, nil
}

func (a *Adapter) SaveProducts(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return a.Write(ctx, ProductsKey, products)
}

// LoadCart never fails on bad data: unparsable text yields an empty cart,
// invalid lines are dropped and lines sharing an id are merged.
func (a *Adapter) LoadCart(ctx context.Context) ([]models.CartLine, error) {
	var raw []models.CartLine
	found, err := a.Read(ctx, CartKey, &raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return []models.CartLine{}, nil
	}

	lines := make([]models.CartLine, 0, len(raw))
	index := make(map[int]int, len(raw))
	for _, l := range raw {
		if err := l.Validate(); err != nil {
			logging.FromContext(ctx).Warn("cart_line_dropped", "key", CartKey, "error", err)
			continue
		}
		if i, ok := index[l.ID]; ok {
			lines[i].Qty += l.Qty
			continue
		}
		index[l.ID] = len(lines)
		lines = append(lines, l)
	}
	return lines, nil
}

func (a *Adapter) SaveCart(ctx context.Context, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return a.Write(ctx, CartKey, lines)
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.KV.Ping(ctx)
}
