package market

// Entitas mengikuti struktur kolom spreadsheet di backend.
// Timestamp dibiarkan string (ISO 8601) persis seperti yang dikirim backend.

type User struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	NomorHp   string `json:"nomorHp,omitempty"`
	Jurusan   string `json:"jurusan,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type Product struct {
	ProductID   string  `json:"product_id"`
	OwnerID     string  `json:"user_id"` // email, atau UUID lama utk data pre-migrasi
	Name        string  `json:"product_name"`
	ImageURL    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Status      int     `json:"status"` // 1 = aktif
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Active reports whether the product can be shown in the buyer catalog.
func (p Product) Active() bool { return p.Status == 1 }

type Order struct {
	OrderID    string  `json:"order_id"`
	BuyerEmail string  `json:"user_id"`
	SellerID   string  `json:"seller_id"` // email, atau UUID lama
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Status     Status  `json:"order_status"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
