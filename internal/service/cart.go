package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/storage"
)

type ProductFinder interface {
	FindByID(ctx context.Context, id int) (models.Product, bool, error)
}

type CartService struct {
	Store     *storage.Adapter
	Catalog   ProductFinder
	Publisher EventPublisher

	mu sync.Mutex
}

type Customer struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
}

// Receipt describes a placed demo order. It is handed back to the caller and
// then forgotten.
type Receipt struct {
	Reference   string          `json:"reference"`
	Name        string          `json:"name"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func (s *CartService) GetCart(ctx context.Context) ([]models.CartLine, error) {
	return s.Store.LoadCart(ctx)
}

func (s *CartService) Count(ctx context.Context) (int, error) {
	lines, err := s.Store.LoadCart(ctx)
	if err != nil {
		return 0, err
	}
	return TotalItems(lines), nil
}

// AddItem reports false, and changes nothing, when productID is not in the catalog.
func (s *CartService) AddItem(ctx context.Context, productID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prod, ok, err := s.Catalog.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if !ok {
		logging.FromContext(ctx).Debug("add_item_skipped", "productID", productID, "reason", "unknown product")
		return false, nil
	}

	lines, err := s.Store.LoadCart(ctx)
	if err != nil {
		return false, err
	}

	if i := indexOf(lines, productID); i >= 0 {
		lines[i].Qty++
	} else {
		lines = append(lines, models.NewCartLine(prod))
	}

	if err := s.save(ctx, lines); err != nil {
		return false, err
	}
	return true, nil
}

// ChangeQuantity adds delta to the line's quantity and drops the line once
// the quantity reaches zero or below. A missing line is left alone.
func (s *CartService) ChangeQuantity(ctx context.Context, productID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.Store.LoadCart(ctx)
	if err != nil {
		return err
	}

	i := indexOf(lines, productID)
	if i < 0 {
		return nil
	}

	lines[i].Qty += delta
	if lines[i].Qty <= 0 {
		lines = append(lines[:i], lines[i+1:]...)
	}
	return s.save(ctx, lines)
}

func (s *CartService) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.Store.LoadCart(ctx)
	if err != nil {
		return err
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.ID != productID {
			kept = append(kept, l)
		}
	}
	return s.save(ctx, kept)
}

func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, []models.CartLine{})
}

// PlaceOrder checks the customer details and the cart, then empties the cart.
// Nothing about the order is stored.
func (s *CartService) PlaceOrder(ctx context.Context, c Customer) (Receipt, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" || c.Phone == "" || c.Address == "" {
		return Receipt{}, fmt.Errorf("name, phone and address are required: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.Store.LoadCart(ctx)
	if err != nil {
		return Receipt{}, err
	}
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	receipt := Receipt{
		Reference:   uuid.NewString(),
		Name:        c.Name,
		TotalItems:  TotalItems(lines),
		TotalAmount: TotalAmount(lines),
	}

	if err := s.save(ctx, []models.CartLine{}); err != nil {
		return Receipt{}, err
	}

	logging.FromContext(ctx).Info("demo_order_placed", "reference", receipt.Reference, "items", receipt.TotalItems)
	return receipt, nil
}

func (s *CartService) save(ctx context.Context, lines []models.CartLine) error {
	if err := s.Store.SaveCart(ctx, lines); err != nil {
		return err
	}
	publish(ctx, s.Publisher, mykafka.CartEvents, "cart", map[string]any{
		"type":        "cart_count_changed",
		"total_items": TotalItems(lines),
	})
	return nil
}

func indexOf(lines []models.CartLine, productID int) int {
	for i, l := range lines {
		if l.ID == productID {
			return i
		}
	}
	return -1
}

func TotalItems(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Qty
	}
	return n
}

func TotalAmount(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
