package storage

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/kv"
	"github.com/Skotchmaster/storefront/internal/models"
)

func newTestAdapter(t *testing.T) (*Adapter, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	return New(mem), mem
}

func TestProducts_RoundTrip(t *testing.T) {
	a, _ := newTestAdapter(t)
	ctx := context.Background()

	want := []models.Product{
		{ID: 3, Title: "A4 Spiral Notebook (200 Pages)", Category: "Stationery", Price: 120},
		{ID: 1, Title: "Engineering Mathematics (Semester Book)", Category: "Academic Book", Price: 450},
		{ID: 9, Title: "Graph Notebook", Category: "Stationery", Price: 55.5},
	}
	require.NoError(t, a.SaveProducts(ctx, want))

	got, found, err := a.LoadProducts(ctx)
	require.NoError(t, err)
	require.True(t, found)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
}

func TestProducts_WireFormat(t *testing.T) {
	a, mem := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.SaveProducts(ctx, []models.Product{{ID: 1, Title: "Pen", Category: "Stationery", Price: 90}}))

	raw, err := mem.Get(ctx, ProductsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Pen","category":"Stationery","price":90}]`, string(raw))
}

func TestLoadProducts_Missing(t *testing.T) {
	a, _ := newTestAdapter(t)

	got, found, err := a.LoadProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestLoadProducts_RejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{{{`},
		{name: "wrong shape", raw: `{"id":1}`},
		{name: "null", raw: `null`},
		{name: "non positive price", raw: `[{"id":1,"title":"Pen","category":"x","price":0}]`},
		{name: "missing title", raw: `[{"id":1,"category":"x","price":10}]`},
		{name: "duplicate ids", raw: `[{"id":1,"title":"a","price":1},{"id":1,"title":"b","price":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, mem := newTestAdapter(t)
			ctx := context.Background()
			require.NoError(t, mem.Set(ctx, ProductsKey, []byte(tt.raw)))

			_, found, err := a.LoadProducts(ctx)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestLoadProducts_RepairsBlankCategory(t *testing.T) {
	a, mem := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, ProductsKey, []byte(`[{"id":2,"title":"Eraser","price":5}]`)))

	got, found, err := a.LoadProducts(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.DefaultCategory, got[0].Category)
}

func TestCart_RoundTrip(t *testing.T) {
	a, mem := newTestAdapter(t)
	ctx := context.Background()

	want := []models.CartLine{
		{ID: 1, Title: "Engineering Mathematics (Semester Book)", Price: 450, Qty: 2},
		{ID: 5, Title: "Hardbound Journal Diary", Price: 260, Qty: 1},
	}
	require.NoError(t, a.SaveCart(ctx, want))

	raw, err := mem.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"qty":2`)

	got, err := a.LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCart_MissingIsEmpty(t *testing.T) {
	a, _ := newTestAdapter(t)

	got, err := a.LoadCart(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadCart_MalformedIsEmptyAndNotRewritten(t *testing.T) {
	a, mem := newTestAdapter(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, CartKey, []byte(`not json`)))

	got, err := a.LoadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	raw, err := mem.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(raw))
}

func TestLoadCart_RepairsLines(t *testing.T) {
	a, mem := newTestAdapter(t)
	ctx := context.Background()
	raw := `[
		{"id":3,"title":"Notebook","price":120,"qty":1},
		{"id":4,"title":"Pen","price":90,"qty":0},
		{"id":3,"title":"Notebook","price":120,"qty":2},
		{"id":0,"title":"Ghost","price":1,"qty":1}
	]`
	require.NoError(t, mem.Set(ctx, CartKey, []byte(raw)))

	got, err := a.LoadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CartLine{{ID: 3, Title: "Notebook", Price: 120, Qty: 3}}, got)
}

func TestSaveCart_NilWritesEmptyArray(t *testing.T) {
	a, mem := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.SaveCart(ctx, nil))

	raw, err := mem.Get(ctx, CartKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
