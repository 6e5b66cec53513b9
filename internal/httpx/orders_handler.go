package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkax "github.com/mraditya/go-sheet-market.git/internal/kafka"
	"github.com/mraditya/go-sheet-market.git/internal/market"
	"github.com/mraditya/go-sheet-market.git/internal/sheetapi"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type OrdersHandler struct {
	Sheets  *sheetapi.Client
	Redis   *redis.Client
	Placed  *kafkax.Producer // event order baru
	Changed *kafkax.Producer // event perubahan status
	Aliases market.Aliases
	Service string
}

type createOrderReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateOrderReq struct {
	OrderStatus market.Status `json:"order_status"`
}

type orderListResp struct {
	Success bool           `json:"success"`
	Data    []market.Order `json:"data"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/orders", h.list)
	r.With(RequireRole(market.RoleBuyer)).Post("/orders", h.create)
	r.With(RequireRole(market.RoleSeller)).Patch("/orders/{id}", h.updateStatus)
}

func (h *OrdersHandler) loadOrders(ctx context.Context, email string) ([]market.Order, string) {
	rows, errMsg := fetchRows(ctx, h.Redis, sheetapi.SheetOrders, func(ctx context.Context) sheetapi.Result {
		return h.Sheets.ReadOrders(ctx, email)
	})
	if errMsg != "" {
		return nil, errMsg
	}
	return market.OrdersFromRows(rows), ""
}

// list shows the viewer's side of the order book: buyer melihat pesanannya
// sendiri, seller melihat pesanan yang masuk untuknya.
func (h *OrdersHandler) list(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, errMsg := h.loadOrders(ctx, claims.Email)
	if errMsg != "" {
		writeError(w, statusFor(errMsg), errMsg)
		return
	}

	var view []market.Order
	if claims.Role == market.RoleSeller {
		view = market.SellerOrders(orders, claims.Email, h.Aliases)
	} else {
		view = market.BuyerOrders(orders, claims.Email)
	}
	writeJSON(w, http.StatusOK, orderListResp{Success: true, Data: market.SortOrdersNewest(view)})
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())

	var req createOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" || req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "product_id and quantity >= 1 are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	// Baca produk langsung dari backend (tanpa cache): harga dan stok harus
	// kondisi terkini karena total dihitung ulang di sini, bukan dipercaya
	// dari klien.
	res := h.Sheets.ReadProducts(ctx, claims.Email)
	if !res.Success {
		writeError(w, statusFor(res.Error), res.Error)
		return
	}
	rows, err := market.DecodeRows(res.Data)
	if err != nil {
		writeError(w, http.StatusBadGateway, "unexpected row data: "+err.Error())
		return
	}

	var product market.Product
	found := false
	for _, row := range rows {
		p := market.ProductFromRow(row)
		if p.ProductID == req.ProductID {
			product, found = p, true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if !product.Active() {
		writeError(w, http.StatusBadRequest, "product is not available")
		return
	}
	if product.Stock < req.Quantity {
		writeError(w, http.StatusBadRequest, "not enough stock")
		return
	}

	total := product.Price * float64(req.Quantity)
	createRes := h.Sheets.CreateOrder(ctx, claims.Email, &sheetapi.OrderData{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		TotalPrice: total,
	})
	if !createRes.Success {
		writeError(w, statusFor(createRes.Error), createRes.Error)
		return
	}

	invalidateRows(ctx, h.Redis, sheetapi.SheetOrders)
	h.publishPlaced(r, createRes.OrderID, claims.Email, product, req.Quantity, total)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"order_id":    createRes.OrderID,
		"total_price": total,
	})
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	orderID := chi.URLParam(r, "id")

	var req updateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if !market.ValidStatus(req.OrderStatus) {
		writeError(w, http.StatusBadRequest, "unknown order status: "+string(req.OrderStatus))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	orders, errMsg := h.loadOrders(ctx, claims.Email)
	if errMsg != "" {
		writeError(w, statusFor(errMsg), errMsg)
		return
	}

	var current market.Order
	found := false
	for _, o := range orders {
		if o.OrderID == orderID {
			current, found = o, true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if !h.Aliases.SameOwner(current.SellerID, claims.Email) {
		writeError(w, http.StatusForbidden, "order belongs to another seller")
		return
	}
	if !market.CanTransition(current.Status, req.OrderStatus) {
		writeError(w, http.StatusConflict,
			"cannot change status from "+string(current.Status)+" to "+string(req.OrderStatus))
		return
	}

	res := h.Sheets.UpdateOrderStatus(ctx, claims.Email, orderID, string(req.OrderStatus))
	if !res.Success {
		writeError(w, statusFor(res.Error), res.Error)
		return
	}

	invalidateRows(ctx, h.Redis, sheetapi.SheetOrders)
	h.publishStatusChanged(r, current, req.OrderStatus, claims.Email)

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "new_status": req.OrderStatus})
}

func (h *OrdersHandler) publishPlaced(r *http.Request, orderID, buyer string, p market.Product, qty int, total float64) {
	if h.Placed == nil {
		return
	}
	ev := market.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     market.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(market.OrderPlacedPayload{
			OrderID:     orderID,
			BuyerEmail:  buyer,
			SellerEmail: p.OwnerID,
			ProductID:   p.ProductID,
			ProductName: p.Name,
			Quantity:    qty,
			TotalPrice:  total,
		}),
	}
	h.Placed.Publish(market.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(market.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) publishStatusChanged(r *http.Request, o market.Order, newStatus market.Status, seller string) {
	if h.Changed == nil {
		return
	}
	ev := market.EventEnvelope{
		EventID:       uuid.NewString(),
		EventType:     market.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: o.OrderID,
		Payload: kafkax.MustMarshal(market.OrderStatusChangedPayload{
			OrderID:     o.OrderID,
			SellerEmail: seller,
			BuyerEmail:  o.BuyerEmail,
			OldStatus:   o.Status,
			NewStatus:   newStatus,
		}),
	}
	h.Changed.Publish(market.PartitionKey(o.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(market.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
