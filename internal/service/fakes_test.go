package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
)

// In-memory repository fakes. They implement the same contracts as the
// postgres implementations, including the "nil, nil on no rows" convention
// and the atomic order insert.

type fakeRestaurantRepo struct {
	mu          sync.Mutex
	restaurants map[string]*domain.Restaurant
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{restaurants: make(map[string]*domain.Restaurant)}
}

func (f *fakeRestaurantRepo) Create(_ context.Context, r *domain.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.restaurants[r.ID] = &cp
	return nil
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id string) (*domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.restaurants[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRestaurantRepo) ListByOwner(_ context.Context, ownerUserID string) ([]*domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Restaurant, 0)
	for _, r := range f.restaurants {
		if r.OwnerUserID == ownerUserID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRestaurantRepo) Update(_ context.Context, r *domain.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *r
	f.restaurants[r.ID] = &cp
	return nil
}

type fakeTableRepo struct {
	mu     sync.Mutex
	tables map[string]*domain.Table
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[string]*domain.Table)}
}

func (f *fakeTableRepo) Create(_ context.Context, t *domain.Table) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tables[t.ID] = &cp
	return nil
}

func (f *fakeTableRepo) GetByID(_ context.Context, id string) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tables[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTableRepo) GetByToken(_ context.Context, token string) (*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tables {
		if t.QRCodeIdentifier == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTableRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Table, 0)
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) ExistsNumber(_ context.Context, restaurantID string, tableNumber int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID && t.TableNumber == tableNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTableRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tables, id)
	return nil
}

type fakeMenuRepo struct {
	mu    sync.Mutex
	menus map[string]*domain.Menu
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{menus: make(map[string]*domain.Menu)}
}

func (f *fakeMenuRepo) Create(_ context.Context, m *domain.Menu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.menus[m.ID] = &cp
	return nil
}

func (f *fakeMenuRepo) GetByID(_ context.Context, id string) (*domain.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.menus[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMenuRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Menu, 0)
	for _, m := range f.menus {
		if m.RestaurantID == restaurantID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMenuRepo) GetActiveByRestaurant(_ context.Context, restaurantID string) (*domain.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *domain.Menu
	for _, m := range f.menus {
		if m.RestaurantID != restaurantID || !m.IsActive {
			continue
		}
		if latest == nil || m.UpdatedAt.After(latest.UpdatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeMenuRepo) Update(_ context.Context, m *domain.Menu) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.menus[m.ID] = &cp
	return nil
}

func (f *fakeMenuRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.menus, id)
	return nil
}

// fakeOrderRepo mirrors the transactional contract of the postgres order
// repository: prices resolved at insert time scoped to the table's
// restaurant, all-or-nothing on unknown items, and a notification row
// written with the order.
type fakeOrderRepo struct {
	mu            sync.Mutex
	tables        map[string]*domain.Table
	menus         map[string]*domain.Menu
	menuItems     map[string]*domain.MenuItem
	orders        map[string]*domain.Order
	notifications []*domain.Notification

	// afterMeta, when set, runs after GetMeta returns its snapshot; tests
	// use it to interleave a concurrent writer.
	afterMeta func()
}

func newFakeOrderRepo(tables *fakeTableRepo, menus map[string]*domain.Menu, items map[string]*domain.MenuItem) *fakeOrderRepo {
	repo := &fakeOrderRepo{
		tables:    make(map[string]*domain.Table),
		menus:     menus,
		menuItems: items,
		orders:    make(map[string]*domain.Order),
	}
	if tables != nil {
		for id, t := range tables.tables {
			cp := *t
			repo.tables[id] = &cp
		}
	}
	if repo.menus == nil {
		repo.menus = make(map[string]*domain.Menu)
	}
	if repo.menuItems == nil {
		repo.menuItems = make(map[string]*domain.MenuItem)
	}
	return repo
}

func (f *fakeOrderRepo) CreateWithItems(_ context.Context, order *domain.Order, lines []repository.OrderLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	table, ok := f.tables[order.TableID]
	if !ok {
		return domain.ErrTableNotFound
	}
	order.TableNumber = table.TableNumber
	order.RestaurantID = table.RestaurantID

	order.TotalAmount = 0
	order.Items = make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		item, ok := f.menuItems[line.MenuItemID]
		if ok {
			menu, found := f.menus[item.MenuID]
			if !found || menu.RestaurantID != order.RestaurantID {
				ok = false
			}
		}
		if !ok {
			// Nothing written: the whole order fails
			return domain.ErrMenuItemNotFound
		}
		order.TotalAmount = domain.RoundToCents(order.TotalAmount + domain.LineTotal(item.Price, line.Quantity))
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			MenuItemID:  line.MenuItemID,
			ItemName:    item.Name,
			Quantity:    line.Quantity,
			PriceAtTime: item.Price,
		})
	}

	cp := *order
	f.orders[order.ID] = &cp
	f.notifications = append(f.notifications, &domain.Notification{
		ID:           uuid.New().String(),
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
	})
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListByTable(_ context.Context, tableID string) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range f.orders {
		if o.TableID == tableID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range f.orders {
		if o.RestaurantID == restaurantID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetMeta(_ context.Context, orderID string) (*repository.OrderMeta, error) {
	f.mu.Lock()
	o, ok := f.orders[orderID]
	if !ok {
		f.mu.Unlock()
		return nil, nil
	}
	meta := &repository.OrderMeta{
		OrderID:      o.ID,
		RestaurantID: o.RestaurantID,
		Status:       o.Status,
	}
	f.mu.Unlock()

	if f.afterMeta != nil {
		f.afterMeta()
	}
	return meta, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, from, to domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrInvalidTransition
	}
	o.Status = to
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.orders, orderID)
	return nil
}

// fakePublisher records published events in order
type fakePublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (f *fakePublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published() []events.OrderEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]events.OrderEvent, len(f.events))
	copy(out, f.events)
	return out
}
