package views

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
)

const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

type Notice struct {
	Text string
	Kind string
}

func Success(text string) *Notice { return &Notice{Text: text, Kind: KindSuccess} }
func Error(text string) *Notice   { return &Notice{Text: text, Kind: KindError} }
func Info(text string) *Notice    { return &Notice{Text: text, Kind: KindInfo} }

// Layout is shared by every page.
type Layout struct {
	Title     string
	Active    string
	CartCount int
	CSRF      string
	Notice    *Notice
}

type ProductCard struct {
	ID       int
	Title    string
	Category string
	Price    string
}

type CatalogPage struct {
	Query     string
	Cards     []ProductCard
	Shown     int
	Total     int
	CountLine string
}

func Catalog(products []models.Product, filter string) CatalogPage {
	filtered := service.Filter(products, filter)
	cards := make([]ProductCard, 0, len(filtered))
	for _, p := range filtered {
		cards = append(cards, ProductCard{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Price:    models.FormatPrice(p.Price),
		})
	}
	return CatalogPage{
		Query:     strings.TrimSpace(filter),
		Cards:     cards,
		Shown:     len(filtered),
		Total:     len(products),
		CountLine: fmt.Sprintf("Showing %d of %d products", len(filtered), len(products)),
	}
}

type CartRow struct {
	ID          int
	Title       string
	Price       string
	Subtotal    string
	Qty         int
	Unavailable bool
}

type CartPage struct {
	Empty       bool
	Rows        []CartRow
	TotalItems  int
	TotalAmount string
}

// Cart builds the cart page. A line whose product is no longer in catalog is
// still shown and counted, but flagged unavailable.
func Cart(lines []models.CartLine, catalog []models.Product) CartPage {
	if len(lines) == 0 {
		return CartPage{Empty: true, TotalAmount: "0"}
	}

	known := make(map[int]struct{}, len(catalog))
	for _, p := range catalog {
		known[p.ID] = struct{}{}
	}

	rows := make([]CartRow, 0, len(lines))
	for _, l := range lines {
		_, ok := known[l.ID]
		rows = append(rows, CartRow{
			ID:          l.ID,
			Title:       l.Title,
			Price:       models.FormatPrice(l.Price),
			Subtotal:    l.Subtotal().String(),
			Qty:         l.Qty,
			Unavailable: !ok,
		})
	}
	return CartPage{
		Rows:        rows,
		TotalItems:  service.TotalItems(lines),
		TotalAmount: service.TotalAmount(lines).String(),
	}
}

func AdminProducts(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, fmt.Sprintf("%d. %s (₹%s)", p.ID, p.Title, models.FormatPrice(p.Price)))
	}
	return out
}

type HomeData struct {
	Layout
	Catalog CatalogPage
}

type CartData struct {
	Layout
	Cart     CartPage
	Customer service.Customer
}

type AdminForm struct {
	Title    string
	Category string
	Price    string
}

type AdminData struct {
	Layout
	LoggedIn      bool
	Username      string
	LoginUsername string
	Products      []string
	Form          AdminForm
}
