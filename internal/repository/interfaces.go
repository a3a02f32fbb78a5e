package repository

import (
	"context"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// OrderLine is one validated cart line. It carries no price: the repository
// resolves the authoritative menu price inside the insert transaction.
type OrderLine struct {
	MenuItemID string
	Quantity   int
}

// OrderMeta is the minimal ownership view of an order, used for
// tenant-isolation checks before any mutating call.
type OrderMeta struct {
	OrderID      string
	RestaurantID string
	Status       domain.OrderStatus
}

// RestaurantRepository persists restaurants
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *domain.Restaurant) error
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Restaurant, error)
	Update(ctx context.Context, restaurant *domain.Restaurant) error
}

// TableRepository persists tables
type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	GetByID(ctx context.Context, id string) (*domain.Table, error)
	// GetByToken looks up exactly one table by its opaque QR identifier.
	GetByToken(ctx context.Context, token string) (*domain.Table, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Table, error)
	// ExistsNumber reports whether the table number is taken within the restaurant.
	ExistsNumber(ctx context.Context, restaurantID string, tableNumber int) (bool, error)
	Delete(ctx context.Context, id string) error
}

// MenuRepository persists menus
type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, id string) (*domain.Menu, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Menu, error)
	// GetActiveByRestaurant returns the most recently updated active menu.
	GetActiveByRestaurant(ctx context.Context, restaurantID string) (*domain.Menu, error)
	Update(ctx context.Context, menu *domain.Menu) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository persists menu categories
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ListByMenu(ctx context.Context, menuID string) ([]*domain.Category, error)
	UpdatePosition(ctx context.Context, id string, position int) error
	Delete(ctx context.Context, id string) error
}

// MenuItemRepository persists menu items
type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	ListByMenu(ctx context.Context, menuID string) ([]*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository persists orders and their items
type OrderRepository interface {
	// CreateWithItems atomically resolves menu prices, inserts the order, its
	// items with price snapshots, and the restaurant notification. On return
	// the order carries its computed total, items, table number and
	// restaurant id. Fails without partial state if any line references an
	// unknown menu item.
	CreateWithItems(ctx context.Context, order *domain.Order, lines []OrderLine) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByTable(ctx context.Context, tableID string) ([]*domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Order, error)
	// GetMeta returns the order's owning restaurant and current status.
	GetMeta(ctx context.Context, orderID string) (*OrderMeta, error)
	// UpdateStatus conditionally advances an order: the write only applies
	// when the stored status still equals from, otherwise
	// domain.ErrInvalidTransition is returned.
	UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
}

// NotificationRepository persists order notifications
type NotificationRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Notification, error)
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ProfileRepository mirrors identity-provider users
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}
