package sheetapi

// Bentuk amplop persis mengikuti kontrak endpoint Apps Script: satu POST
// dengan field "sheet" + "action", sisanya tergantung resource. Nama field
// JSON di sini tidak boleh diubah.

const (
	SheetUsers    = "Users"
	SheetProducts = "Products"
	SheetOrders   = "Orders"
)

const (
	ActionRegister = "register"
	ActionLogin    = "login"
	ActionCreate   = "create"
	ActionRead     = "read"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
)

type UserEnvelope struct {
	Sheet    string `json:"sheet"`
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	FullName string `json:"fullName,omitempty"`
	NomorHp  string `json:"nomorHp,omitempty"`
	Jurusan  string `json:"jurusan,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ProductData is the mutable part of a product row. Pointer fields supaya
// update parsial bisa bedakan "tidak dikirim" dan "di-set nol".
type ProductData struct {
	ProductName *string  `json:"product_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Status      *int     `json:"status,omitempty"`

	// Upload gambar: payload base64 + metadata, di-host oleh backend.
	ImageData string `json:"imageData,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	FileName  string `json:"fileName,omitempty"`
}

type ProductEnvelope struct {
	Sheet     string       `json:"sheet"`
	Action    string       `json:"action"`
	Email     string       `json:"email"`
	Data      *ProductData `json:"data,omitempty"`
	ProductID string       `json:"product_id,omitempty"`
}

type OrderData struct {
	ProductID   string  `json:"product_id,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	TotalPrice  float64 `json:"total_price,omitempty"`
	OrderStatus string  `json:"order_status,omitempty"`
}

type OrderEnvelope struct {
	Sheet       string     `json:"sheet"`
	Action      string     `json:"action"`
	Email       string     `json:"email"`
	OrderID     string     `json:"order_id,omitempty"`
	Data        *OrderData `json:"data,omitempty"`
	OrderStatus string     `json:"order_status,omitempty"`
}

// NewOrderEnvelope builds the Orders envelope. Untuk action update, status
// diangkat ke top level: backend lama menerima status lewat field langsung
// maupun lewat data bag, dan versi nested yang menang kalau dua-duanya ada.
func NewOrderEnvelope(action, email, orderID, status string, data *OrderData) OrderEnvelope {
	env := OrderEnvelope{
		Sheet:   SheetOrders,
		Action:  action,
		Email:   email,
		OrderID: orderID,
		Data:    data,
	}
	if action == ActionUpdate {
		if status != "" {
			env.OrderStatus = status
		}
		if data != nil && data.OrderStatus != "" {
			env.OrderStatus = data.OrderStatus
		}
	}
	return env
}
