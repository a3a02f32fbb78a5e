package domain

import "time"

// Restaurant is the tenant root. Every table, menu and (transitively) order
// belongs to exactly one restaurant; mutating operations compare OwnerUserID
// against the caller's verified identity.
type Restaurant struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	OwnerUserID    string     `json:"owner_user_id"`
	LogoURL        string     `json:"logo_url,omitempty"`
	Address        string     `json:"address,omitempty"`
	OpeningHours   string     `json:"opening_hours,omitempty"`
	PaymentMethods []string   `json:"payment_methods,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// Table belongs to one restaurant. TableNumber is unique per restaurant and
// never exposed as a lookup key; QRCodeIdentifier is the only public handle.
type Table struct {
	ID               string    `json:"id"`
	RestaurantID     string    `json:"restaurant_id"`
	TableNumber      int       `json:"table_number"`
	QRCodeIdentifier string    `json:"qr_code_identifier"`
	CreatedAt        time.Time `json:"created_at"`
}

// Menu belongs to one restaurant. Multiple menus may be active at once; the
// public QR flow picks the most recently updated active one.
type Menu struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	BannerURL    string    `json:"banner_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category groups menu items with a stable display position
type Category struct {
	ID       string `json:"id"`
	MenuID   string `json:"menu_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// MenuItem belongs to one category and one menu
type MenuItem struct {
	ID          string    `json:"id"`
	MenuID      string    `json:"menu_id"`
	CategoryID  string    `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Order belongs to one table; the restaurant is resolved transitively.
// TotalAmount is computed server-side at insert time and stored.
type Order struct {
	ID           string      `json:"id"`
	TableID      string      `json:"table_id"`
	TableNumber  int         `json:"table_number,omitempty"`
	RestaurantID string      `json:"restaurant_id,omitempty"`
	CustomerName string      `json:"customer_name"`
	Observations string      `json:"observations,omitempty"`
	Status       OrderStatus `json:"status"`
	TotalAmount  float64     `json:"total_amount"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OrderItem references a menu item. PriceAtTime snapshots the menu price at
// order placement so later price edits never change historical totals.
type OrderItem struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"order_id"`
	MenuItemID  string  `json:"menu_item_id"`
	ItemName    string  `json:"item_name,omitempty"`
	Quantity    int     `json:"quantity"`
	PriceAtTime float64 `json:"price_at_time"`
}

// Notification is the poll-based backstop for the realtime channel: one row
// per placed order, scoped to the owning restaurant.
type Notification struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	OrderID      string    `json:"order_id"`
	TableNumber  int       `json:"table_number"`
	CustomerName string    `json:"customer_name"`
	TotalAmount  float64   `json:"total_amount"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile mirrors the identity provider's user records, upserted via webhook
type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
