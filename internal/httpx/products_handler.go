package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mraditya/go-sheet-market.git/internal/market"
	"github.com/mraditya/go-sheet-market.git/internal/sheetapi"
	"github.com/redis/go-redis/v9"
)

type ProductsHandler struct {
	Sheets  *sheetapi.Client
	Redis   *redis.Client
	Aliases market.Aliases
}

type productListResp struct {
	Success    bool             `json:"success"`
	Data       []market.Product `json:"data"`
	Categories []string         `json:"categories,omitempty"`
}

type productWriteReq struct {
	ProductName *string  `json:"product_name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	Status      *int     `json:"status"`
	ImageData   string   `json:"imageData"`
	MimeType    string   `json:"mimeType"`
	FileName    string   `json:"fileName"`
}

func (h *ProductsHandler) Register(r chi.Router) {
	r.Get("/products", h.catalog)

	seller := r.With(RequireRole(market.RoleSeller))
	seller.Get("/seller/products", h.ownedList)
	seller.Post("/seller/products", h.create)
	seller.Put("/seller/products/{id}", h.update)
	seller.Delete("/seller/products/{id}", h.delete)
}

func (h *ProductsHandler) loadProducts(ctx context.Context, email string) ([]market.Product, string) {
	rows, errMsg := fetchRows(ctx, h.Redis, sheetapi.SheetProducts, func(ctx context.Context) sheetapi.Result {
		return h.Sheets.ReadProducts(ctx, email)
	})
	if errMsg != "" {
		return nil, errMsg
	}
	return market.ProductsFromRows(rows), ""
}

// catalog is the buyer view: active products of other sellers, filtered and
// sorted by query params (q, category, sort).
func (h *ProductsHandler) catalog(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, errMsg := h.loadProducts(ctx, claims.Email)
	if errMsg != "" {
		writeError(w, statusFor(errMsg), errMsg)
		return
	}

	q := r.URL.Query()
	filtered := market.FilterCatalog(products, market.CatalogFilter{
		Query:       q.Get("q"),
		Category:    q.Get("category"),
		ViewerEmail: claims.Email,
	})
	sorted := market.SortProducts(filtered, market.SortKey(q.Get("sort")))

	writeJSON(w, http.StatusOK, productListResp{
		Success:    true,
		Data:       sorted,
		Categories: market.Categories(products),
	})
}

func (h *ProductsHandler) ownedList(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	products, errMsg := h.loadProducts(ctx, claims.Email)
	if errMsg != "" {
		writeError(w, statusFor(errMsg), errMsg)
		return
	}

	owned := market.FilterOwned(products, claims.Email, h.Aliases)
	writeJSON(w, http.StatusOK, productListResp{
		Success: true,
		Data:    market.SortProducts(owned, market.SortNewest),
	})
}

func (req productWriteReq) data() *sheetapi.ProductData {
	return &sheetapi.ProductData{
		ProductName: req.ProductName,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		Status:      req.Status,
		ImageData:   req.ImageData,
		MimeType:    req.MimeType,
		FileName:    req.FileName,
	}
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())

	var req productWriteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductName == nil || *req.ProductName == "" {
		writeError(w, http.StatusBadRequest, "product_name is required")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second) // upload gambar bisa lama
	defer cancel()

	res := h.Sheets.CreateProduct(ctx, claims.Email, req.data())
	if !res.Success {
		writeError(w, statusFor(res.Error), res.Error)
		return
	}
	invalidateRows(ctx, h.Redis, sheetapi.SheetProducts)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "product_id": res.ProductID})
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	productID := chi.URLParam(r, "id")

	var req productWriteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must not be negative")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	res := h.Sheets.UpdateProduct(ctx, claims.Email, productID, req.data())
	if !res.Success {
		writeError(w, statusFor(res.Error), res.Error)
		return
	}
	invalidateRows(ctx, h.Redis, sheetapi.SheetProducts)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	productID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res := h.Sheets.DeleteProduct(ctx, claims.Email, productID)
	if !res.Success {
		writeError(w, statusFor(res.Error), res.Error)
		return
	}
	invalidateRows(ctx, h.Redis, sheetapi.SheetProducts)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
