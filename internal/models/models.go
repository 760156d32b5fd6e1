package models

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCategory = "Misc"

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidCartLine = errors.New("invalid cart line")
)

type Product struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", p.ID, ErrInvalidProduct)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is empty: %w", ErrInvalidProduct)
	}
	if !ValidPrice(p.Price) {
		return fmt.Errorf("price must be positive, got %v: %w", p.Price, ErrInvalidProduct)
	}
	return nil
}

// CartLine keeps the title and price copied from the product when it was first
// added; later catalog edits do not reach it.
type CartLine struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

func NewCartLine(p Product) CartLine {
	return CartLine{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Qty:   1,
	}
}

func (l CartLine) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d: %w", l.ID, ErrInvalidCartLine)
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("title is empty: %w", ErrInvalidCartLine)
	}
	if !ValidPrice(l.Price) {
		return fmt.Errorf("price must be positive, got %v: %w", l.Price, ErrInvalidCartLine)
	}
	if l.Qty < 1 {
		return fmt.Errorf("qty must be at least 1, got %d: %w", l.Qty, ErrInvalidCartLine)
	}
	return nil
}

func (l CartLine) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Qty)))
}

func ValidPrice(price float64) bool {
	return price > 0 && !math.IsInf(price, 0) && !math.IsNaN(price)
}

// FormatPrice prints a price without trailing zeros: 450, 55.5.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).String()
}
