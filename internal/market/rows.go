package market

import (
	"encoding/json"
	"strconv"
)

// Backend mengembalikan baris spreadsheet sebagai array posisi, bukan objek.
// Decode dilakukan sekali di boundary ini supaya sisa kode pakai field bernama.
//
// Kolom Products: product_id, user_id, product_name, image_url, description,
// price, stock, category, status, created_at, updated_at.
// Kolom Orders: order_id, user_id, seller_id, product_id, quantity,
// total_price, order_status, created_at, updated_at.

type Row []any

// DecodeRows parses the raw "data" payload of a read response into rows.
func DecodeRows(raw json.RawMessage) ([]Row, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Sel yang hilang atau bertipe lain tidak boleh bikin panic; baris pendek
// menghasilkan zero value. Angka bisa datang sebagai number JSON maupun string
// (spreadsheet tidak konsisten soal ini).

func (r Row) str(i int) string {
	if i >= len(r) {
		return ""
	}
	switch v := r[i].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func (r Row) num(i int) float64 {
	if i >= len(r) {
		return 0
	}
	switch v := r[i].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func ProductFromRow(r Row) Product {
	return Product{
		ProductID:   r.str(0),
		OwnerID:     r.str(1),
		Name:        r.str(2),
		ImageURL:    r.str(3),
		Description: r.str(4),
		Price:       r.num(5),
		Stock:       int(r.num(6)),
		Category:    r.str(7),
		Status:      int(r.num(8)),
		CreatedAt:   r.str(9),
		UpdatedAt:   r.str(10),
	}
}

func OrderFromRow(r Row) Order {
	return Order{
		OrderID:    r.str(0),
		BuyerEmail: r.str(1),
		SellerID:   r.str(2),
		ProductID:  r.str(3),
		Quantity:   int(r.num(4)),
		TotalPrice: r.num(5),
		Status:     Status(r.str(6)),
		CreatedAt:  r.str(7),
		UpdatedAt:  r.str(8),
	}
}

func ProductsFromRows(rows []Row) []Product {
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductFromRow(r))
	}
	return out
}

func OrdersFromRows(rows []Row) []Order {
	out := make([]Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, OrderFromRow(r))
	}
	return out
}
