package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{
			ProductID: "p-1", OwnerID: "seller@x.com", Name: "Telur Ayam",
			Description: "telur segar", Price: 50000, Stock: 10,
			Category: "pangan", Status: 1, CreatedAt: "2024-03-01T00:00:00Z",
		},
		{
			ProductID: "p-2", OwnerID: "seller@x.com", Name: "Telur Bebek",
			Description: "telur asin", Price: 20000, Stock: 5,
			Category: "pangan", Status: 0, CreatedAt: "2024-02-01T00:00:00Z",
		},
		{
			ProductID: "p-3", OwnerID: "other@x.com", Name: "Beras Premium",
			Description: "", Price: 80000, Stock: 0,
			Category: "pangan", Status: 1, CreatedAt: "2024-01-01T00:00:00Z",
		},
	}
}

func TestFilterCatalog(t *testing.T) {
	products := sampleProducts()

	t.Run("query matches name, inactive excluded", func(t *testing.T) {
		got := FilterCatalog(products, CatalogFilter{Query: "telur", Category: "all", ViewerEmail: "buyer@x.com"})
		require.Len(t, got, 1)
		assert.Equal(t, "Telur Ayam", got[0].Name)
	})

	t.Run("own products excluded from buyer view", func(t *testing.T) {
		got := FilterCatalog(products, CatalogFilter{ViewerEmail: "seller@x.com"})
		require.Len(t, got, 1)
		assert.Equal(t, "p-3", got[0].ProductID)
	})

	t.Run("empty query matches everything", func(t *testing.T) {
		got := FilterCatalog(products, CatalogFilter{ViewerEmail: "buyer@x.com"})
		assert.Len(t, got, 2) // p-2 tetap keluar karena non-aktif
	})

	t.Run("unknown category matches nothing", func(t *testing.T) {
		got := FilterCatalog(products, CatalogFilter{Category: "elektronik", ViewerEmail: "buyer@x.com"})
		assert.Empty(t, got)
	})

	t.Run("query matches description case-insensitively", func(t *testing.T) {
		got := FilterCatalog(products, CatalogFilter{Query: "SEGAR", ViewerEmail: "buyer@x.com"})
		require.Len(t, got, 1)
		assert.Equal(t, "p-1", got[0].ProductID)
	})

	t.Run("missing description does not panic and does not match", func(t *testing.T) {
		got := FilterCatalog(products, CatalogFilter{Query: "asin", ViewerEmail: "buyer@x.com"})
		assert.Empty(t, got) // satu-satunya yang cocok non-aktif
	})

	t.Run("input not mutated, result idempotent", func(t *testing.T) {
		f := CatalogFilter{Query: "telur", Category: "all", ViewerEmail: "buyer@x.com"}
		first := FilterCatalog(products, f)
		second := FilterCatalog(products, f)
		assert.Equal(t, first, second)
		assert.Equal(t, sampleProducts(), products)
	})
}

func TestFilterOwned(t *testing.T) {
	products := []Product{
		{ProductID: "p-1", OwnerID: "a@x.com"},
		{ProductID: "p-2", OwnerID: "b@x.com"},
		{ProductID: "p-3", OwnerID: "287799bf-9621-4ef9-ad24-3f8e77cf1461"},
	}

	t.Run("email equality", func(t *testing.T) {
		got := FilterOwned(products, "a@x.com", nil)
		require.Len(t, got, 1)
		assert.Equal(t, "p-1", got[0].ProductID)
	})

	t.Run("legacy alias applied before comparison", func(t *testing.T) {
		aliases := Aliases{"a@x.com": "287799bf-9621-4ef9-ad24-3f8e77cf1461"}
		got := FilterOwned(products, "a@x.com", aliases)
		require.Len(t, got, 2)
		assert.Equal(t, "p-1", got[0].ProductID)
		assert.Equal(t, "p-3", got[1].ProductID)
	})
}

func TestSortProducts(t *testing.T) {
	products := []Product{
		{Name: "B", Price: 50000, Stock: 3, CreatedAt: "2024-02-01T00:00:00Z"},
		{Name: "A", Price: 20000, Stock: 9, CreatedAt: "2024-03-01T00:00:00Z"},
		{Name: "C", Price: 80000, Stock: 1, CreatedAt: "2024-01-01T00:00:00Z"},
	}

	prices := func(ps []Product) []float64 {
		out := make([]float64, len(ps))
		for i, p := range ps {
			out[i] = p.Price
		}
		return out
	}

	t.Run("price-low", func(t *testing.T) {
		got := SortProducts(products, SortPriceLow)
		assert.Equal(t, []float64{20000, 50000, 80000}, prices(got))
	})

	t.Run("price-high", func(t *testing.T) {
		got := SortProducts(products, SortPriceHigh)
		assert.Equal(t, []float64{80000, 50000, 20000}, prices(got))
	})

	t.Run("name", func(t *testing.T) {
		got := SortProducts(products, SortName)
		assert.Equal(t, "A", got[0].Name)
		assert.Equal(t, "C", got[2].Name)
	})

	t.Run("stock descending", func(t *testing.T) {
		got := SortProducts(products, SortStock)
		assert.Equal(t, 9, got[0].Stock)
		assert.Equal(t, 1, got[2].Stock)
	})

	t.Run("default newest first", func(t *testing.T) {
		got := SortProducts(products, "")
		assert.Equal(t, "A", got[0].Name)
		assert.Equal(t, "C", got[2].Name)
	})

	t.Run("input order untouched", func(t *testing.T) {
		_ = SortProducts(products, SortPriceLow)
		assert.Equal(t, "B", products[0].Name)
	})

	t.Run("unparseable timestamp sorts last", func(t *testing.T) {
		withBad := append([]Product{{Name: "X", CreatedAt: "bukan-tanggal"}}, products...)
		got := SortProducts(withBad, SortNewest)
		assert.Equal(t, "X", got[len(got)-1].Name)
	})
}

func TestOrderViews(t *testing.T) {
	orders := []Order{
		{OrderID: "o-1", BuyerEmail: "b@x.com", SellerID: "a@x.com", CreatedAt: "2024-01-01T00:00:00Z"},
		{OrderID: "o-2", BuyerEmail: "c@x.com", SellerID: "a@x.com", CreatedAt: "2024-02-01T00:00:00Z"},
		{OrderID: "o-3", BuyerEmail: "b@x.com", SellerID: "z@x.com", CreatedAt: "2024-03-01T00:00:00Z"},
	}

	t.Run("buyer view", func(t *testing.T) {
		got := BuyerOrders(orders, "b@x.com")
		require.Len(t, got, 2)
		assert.Equal(t, "o-1", got[0].OrderID)
		assert.Equal(t, "o-3", got[1].OrderID)
	})

	t.Run("seller view retains only own rows", func(t *testing.T) {
		got := SellerOrders(orders, "a@x.com", nil)
		require.Len(t, got, 2)
		for _, o := range got {
			assert.Equal(t, "a@x.com", o.SellerID)
		}
	})

	t.Run("newest first", func(t *testing.T) {
		got := SortOrdersNewest(orders)
		assert.Equal(t, "o-3", got[0].OrderID)
		assert.Equal(t, "o-1", got[2].OrderID)
	})
}

func TestCategories(t *testing.T) {
	got := Categories([]Product{
		{Category: "pangan"},
		{Category: ""},
		{Category: "minuman"},
		{Category: "pangan"},
	})
	assert.Equal(t, []string{"pangan", "minuman"}, got)
}
