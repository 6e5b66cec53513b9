package sheetapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// Pesan fallback kalau error tidak punya pesan yang bisa ditampilkan.
const ErrGeneric = "terjadi kesalahan saat menghubungi server"

// Result adalah bentuk seragam semua balasan backend. Call tidak pernah
// mengembalikan error Go: kegagalan transport maupun parse dikonversi ke
// Result{Success:false} supaya pemanggil cukup cek satu bentuk.
type Result struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	Redirect  string          `json:"redirect,omitempty"`
	ProductID string          `json:"product_id,omitempty"`
	OrderID   string          `json:"order_id,omitempty"`
	NewStatus string          `json:"new_status,omitempty"`
}

type Client struct {
	URL  string
	HTTP *http.Client
}

func New(url string) *Client {
	return &Client{URL: url, HTTP: http.DefaultClient}
}

// Apps Script kadang menjawab dengan halaman HTML redirect alih-alih JSON
// langsung; target redirect ada di atribut HREF.
var hrefRe = regexp.MustCompile(`HREF="([^"]+)"`)

func failure(msg string) Result {
	if msg == "" {
		msg = ErrGeneric
	}
	return Result{Success: false, Error: msg}
}

// Call sends one envelope and normalizes whatever comes back.
func (c *Client) Call(ctx context.Context, envelope any) Result {
	body, err := json.Marshal(envelope)
	if err != nil {
		return failure(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return failure(err.Error())
	}
	// Apps Script berharap body JSON mentah dengan content-type text.
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err.Error())
	}

	if isHTML(text) {
		return c.followRedirect(ctx, text)
	}
	return parseResult(text)
}

func isHTML(body []byte) bool {
	return bytes.Contains(body, []byte("<HTML>")) || bytes.Contains(body, []byte("<html>"))
}

// followRedirect extracts the HREF target from the HTML page, issues exactly
// one GET and parses that body as the real response.
func (c *Client) followRedirect(ctx context.Context, page []byte) Result {
	m := hrefRe.FindSubmatch(page)
	if m == nil {
		return failure("unexpected HTML response without redirect")
	}
	url := strings.ReplaceAll(string(m[1]), "&amp;", "&")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure(err.Error())
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err.Error())
	}
	return parseResult(text)
}

func parseResult(text []byte) Result {
	var res Result
	if err := json.Unmarshal(text, &res); err != nil {
		return failure(err.Error())
	}
	return res
}

// ---- Typed wrappers per resource ----

func (c *Client) Register(ctx context.Context, email, password, fullName, nomorHp, jurusan, role string) Result {
	return c.Call(ctx, UserEnvelope{
		Sheet:    SheetUsers,
		Action:   ActionRegister,
		Email:    email,
		Password: password,
		FullName: fullName,
		NomorHp:  nomorHp,
		Jurusan:  jurusan,
		Role:     role,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) Result {
	return c.Call(ctx, UserEnvelope{
		Sheet:    SheetUsers,
		Action:   ActionLogin,
		Email:    email,
		Password: password,
	})
}

func (c *Client) ReadProducts(ctx context.Context, email string) Result {
	return c.Call(ctx, ProductEnvelope{Sheet: SheetProducts, Action: ActionRead, Email: email})
}

func (c *Client) CreateProduct(ctx context.Context, email string, data *ProductData) Result {
	return c.Call(ctx, ProductEnvelope{Sheet: SheetProducts, Action: ActionCreate, Email: email, Data: data})
}

func (c *Client) UpdateProduct(ctx context.Context, email, productID string, data *ProductData) Result {
	return c.Call(ctx, ProductEnvelope{
		Sheet:     SheetProducts,
		Action:    ActionUpdate,
		Email:     email,
		ProductID: productID,
		Data:      data,
	})
}

func (c *Client) DeleteProduct(ctx context.Context, email, productID string) Result {
	return c.Call(ctx, ProductEnvelope{
		Sheet:     SheetProducts,
		Action:    ActionDelete,
		Email:     email,
		ProductID: productID,
	})
}

func (c *Client) ReadOrders(ctx context.Context, email string) Result {
	return c.Call(ctx, NewOrderEnvelope(ActionRead, email, "", "", nil))
}

func (c *Client) CreateOrder(ctx context.Context, email string, data *OrderData) Result {
	return c.Call(ctx, NewOrderEnvelope(ActionCreate, email, "", "", data))
}

func (c *Client) UpdateOrderStatus(ctx context.Context, email, orderID, status string) Result {
	return c.Call(ctx, NewOrderEnvelope(ActionUpdate, email, orderID, status, nil))
}
