package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/service"
)

func TestCatalog_CountLine(t *testing.T) {
	products := service.DefaultProducts()

	page := Catalog(products, "")
	assert.Equal(t, "Showing 6 of 6 products", page.CountLine)
	require.Len(t, page.Cards, 6)
	assert.Equal(t, ProductCard{ID: 1, Title: "Engineering Mathematics (Semester Book)", Category: "Academic Book", Price: "450"}, page.Cards[0])

	page = Catalog(products, " stationery ")
	assert.Equal(t, "Showing 2 of 6 products", page.CountLine)
	assert.Equal(t, "stationery", page.Query)
	assert.Equal(t, 2, page.Shown)
	assert.Equal(t, 6, page.Total)
}

func TestCart_Empty(t *testing.T) {
	page := Cart(nil, service.DefaultProducts())
	assert.True(t, page.Empty)
	assert.Empty(t, page.Rows)
}

func TestCart_RowsAndTotals(t *testing.T) {
	lines := []models.CartLine{
		{ID: 1, Title: "Engineering Mathematics (Semester Book)", Price: 450, Qty: 2},
		{ID: 9, Title: "Removed item", Price: 55.5, Qty: 1},
	}

	page := Cart(lines, service.DefaultProducts())
	require.False(t, page.Empty)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, CartRow{ID: 1, Title: "Engineering Mathematics (Semester Book)", Price: "450", Subtotal: "900", Qty: 2}, page.Rows[0])
	assert.True(t, page.Rows[1].Unavailable)
	assert.Equal(t, 3, page.TotalItems)
	assert.Equal(t, "955.5", page.TotalAmount)
}

func TestAdminProducts(t *testing.T) {
	got := AdminProducts([]models.Product{
		{ID: 1, Title: "Engineering Mathematics (Semester Book)", Category: "Academic Book", Price: 450},
		{ID: 7, Title: "Graph Notebook", Category: "Stationery", Price: 55.5},
	})
	assert.Equal(t, []string{
		"1. Engineering Mathematics (Semester Book) (₹450)",
		"7. Graph Notebook (₹55.5)",
	}, got)
}

func TestRenderer_Pages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "home", HomeData{
		Layout:  Layout{Title: "Home", Active: "home", CartCount: 3, CSRF: "tok", Notice: Success("Product added to cart!")},
		Catalog: Catalog(service.DefaultProducts(), ""),
	}, nil)
	require.NoError(t, err)
	html := buf.String()
	assert.Contains(t, html, "Showing 6 of 6 products")
	assert.Contains(t, html, `id="cartCount">3<`)
	assert.Contains(t, html, "notice-success")
	assert.Contains(t, html, `name="csrf_token" value="tok"`)

	buf.Reset()
	err = r.Render(&buf, "cart", CartData{Layout: Layout{Title: "Cart", Active: "cart"}, Cart: Cart(nil, nil)}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Your cart is empty.")
	assert.NotContains(t, buf.String(), "cartSummary")

	buf.Reset()
	err = r.Render(&buf, "admin", AdminData{
		Layout:   Layout{Title: "Admin", Active: "admin"},
		LoggedIn: true,
		Username: "admin",
		Products: AdminProducts(service.DefaultProducts()),
	}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "6. Study Table Lamp (LED) (₹799)")
}

func TestRenderer_EscapesUserText(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "home", HomeData{
		Catalog: Catalog([]models.Product{{ID: 1, Title: "<script>x</script>", Category: "c", Price: 1}}, ""),
	}, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>x</script>")
}
