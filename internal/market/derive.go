package market

import (
	"sort"
	"strings"
	"time"
)

// Pipeline turunan list: semua filter konjungtif, input tidak pernah dimutasi.
// List di sini kecil (puluhan-ratusan baris) jadi cukup recompute tiap request.

const CategoryAll = "all"

type SortKey string

const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
	SortStock     SortKey = "stock"
	SortNewest    SortKey = "newest" // default
)

// CatalogFilter adalah view pembeli: produk aktif, bukan milik viewer sendiri.
type CatalogFilter struct {
	Query       string
	Category    string
	ViewerEmail string
}

func FilterCatalog(products []Product, f CatalogFilter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchQuery(p, f.Query) {
			continue
		}
		if !matchCategory(p, f.Category) {
			continue
		}
		if !p.Active() || p.OwnerID == f.ViewerEmail {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterOwned adalah view penjual: hanya produk milik viewer,
// dengan lookup alias lama diterapkan sebelum perbandingan.
func FilterOwned(products []Product, viewerEmail string, aliases Aliases) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !aliases.SameOwner(p.OwnerID, viewerEmail) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchQuery(p Product, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func matchCategory(p Product, c string) bool {
	if c == "" || c == CategoryAll {
		return true
	}
	return p.Category == c
}

// SortProducts returns a new ordered slice; unknown keys fall back to newest.
func SortProducts(products []Product, by SortKey) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch by {
		case SortPriceLow:
			return a.Price < b.Price
		case SortPriceHigh:
			return a.Price > b.Price
		case SortName:
			return a.Name < b.Name
		case SortStock:
			return a.Stock > b.Stock
		default:
			return parseTime(a.CreatedAt).After(parseTime(b.CreatedAt))
		}
	})
	return out
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{} // baris tanpa timestamp valid jatuh ke urutan paling akhir
	}
	return t
}

// BuyerOrders keeps orders placed by the viewer.
func BuyerOrders(orders []Order, viewerEmail string) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.BuyerEmail == viewerEmail {
			out = append(out, o)
		}
	}
	return out
}

// SellerOrders keeps orders addressed to the viewer as seller.
func SellerOrders(orders []Order, viewerEmail string, aliases Aliases) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if aliases.SameOwner(o.SellerID, viewerEmail) {
			out = append(out, o)
		}
	}
	return out
}

// SortOrdersNewest orders by created_at descending, new slice.
func SortOrdersNewest(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool {
		return parseTime(out[i].CreatedAt).After(parseTime(out[j].CreatedAt))
	})
	return out
}

// Categories lists the distinct non-empty categories, in first-seen order.
func Categories(products []Product) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
