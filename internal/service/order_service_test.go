package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
)

type orderFixture struct {
	restaurantRepo *fakeRestaurantRepo
	orderRepo      *fakeOrderRepo
	publisher      *fakePublisher
	service        OrderService

	ownerID      string
	otherOwnerID string
	restaurantID string
	tableID      string
	burgerID     string
	friesID      string
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		restaurantRepo: newFakeRestaurantRepo(),
		publisher:      &fakePublisher{},
		ownerID:        "owner-1",
		otherOwnerID:   "owner-2",
		restaurantID:   "restaurant-1",
		tableID:        "table-1",
		burgerID:       "item-burger",
		friesID:        "item-fries",
	}

	f.restaurantRepo.restaurants[f.restaurantID] = &domain.Restaurant{
		ID:          f.restaurantID,
		Name:        "Trattoria Uno",
		OwnerUserID: f.ownerID,
	}
	f.restaurantRepo.restaurants["restaurant-2"] = &domain.Restaurant{
		ID:          "restaurant-2",
		Name:        "Trattoria Due",
		OwnerUserID: f.otherOwnerID,
	}

	tables := newFakeTableRepo()
	tables.tables[f.tableID] = &domain.Table{
		ID:           f.tableID,
		RestaurantID: f.restaurantID,
		TableNumber:  7,
	}

	menus := map[string]*domain.Menu{
		"menu-1": {ID: "menu-1", RestaurantID: f.restaurantID, IsActive: true},
		"menu-2": {ID: "menu-2", RestaurantID: "restaurant-2", IsActive: true},
	}
	items := map[string]*domain.MenuItem{
		f.burgerID:     {ID: f.burgerID, MenuID: "menu-1", Name: "Burger", Price: 12.50},
		f.friesID:      {ID: f.friesID, MenuID: "menu-1", Name: "Fries", Price: 4.25},
		"item-foreign": {ID: "item-foreign", MenuID: "menu-2", Name: "Tiramisu", Price: 6.00},
	}

	f.orderRepo = newFakeOrderRepo(tables, menus, items)
	f.service = NewOrderService(f.orderRepo, f.restaurantRepo, f.publisher, logger.Get())
	return f
}

func (f *orderFixture) place(t *testing.T, items []dto.OrderItemInput) *domain.Order {
	t.Helper()
	order, err := f.service.Place(context.Background(), &dto.PlaceOrderRequest{
		TableID:      f.tableID,
		CustomerName: "Alice",
		Items:        items,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

func TestOrderService_Place(t *testing.T) {
	f := newOrderFixture(t)

	order := f.place(t, []dto.OrderItemInput{
		{MenuItemID: f.burgerID, Quantity: 2},
		{MenuItemID: f.friesID, Quantity: 3},
	})

	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	// 2*12.50 + 3*4.25 = 37.75, from stored prices only
	if order.TotalAmount != 37.75 {
		t.Errorf("expected total 37.75, got %v", order.TotalAmount)
	}
	if order.Status != domain.StatusPending {
		t.Errorf("expected status pending, got %s", order.Status)
	}
	if order.RestaurantID != f.restaurantID {
		t.Errorf("expected restaurant %s, got %s", f.restaurantID, order.RestaurantID)
	}
	for _, item := range order.Items {
		if item.PriceAtTime <= 0 {
			t.Errorf("item %s: missing price snapshot", item.MenuItemID)
		}
	}
}

func TestOrderService_Place_UnknownItemIsAtomic(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Place(context.Background(), &dto.PlaceOrderRequest{
		TableID:      f.tableID,
		CustomerName: "Alice",
		Items: []dto.OrderItemInput{
			{MenuItemID: f.burgerID, Quantity: 1},
			{MenuItemID: "item-nonexistent", Quantity: 1},
		},
	})
	if !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}

	if len(f.orderRepo.orders) != 0 {
		t.Errorf("expected no orders persisted, got %d", len(f.orderRepo.orders))
	}
	if len(f.orderRepo.notifications) != 0 {
		t.Errorf("expected no notifications persisted, got %d", len(f.orderRepo.notifications))
	}
	if len(f.publisher.published()) != 0 {
		t.Errorf("expected no events published, got %d", len(f.publisher.published()))
	}
}

func TestOrderService_Place_RejectsOtherRestaurantsItems(t *testing.T) {
	f := newOrderFixture(t)

	// item-foreign exists, but on another restaurant's menu
	_, err := f.service.Place(context.Background(), &dto.PlaceOrderRequest{
		TableID:      f.tableID,
		CustomerName: "Alice",
		Items: []dto.OrderItemInput{
			{MenuItemID: f.burgerID, Quantity: 1},
			{MenuItemID: "item-foreign", Quantity: 1},
		},
	})
	if !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}
	if len(f.orderRepo.orders) != 0 {
		t.Errorf("expected no orders persisted, got %d", len(f.orderRepo.orders))
	}
}

func TestOrderService_Place_UnknownTable(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.Place(context.Background(), &dto.PlaceOrderRequest{
		TableID:      "table-nonexistent",
		CustomerName: "Alice",
		Items:        []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}},
	})
	if !errors.Is(err, domain.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestOrderService_Place_CreatesNotification(t *testing.T) {
	f := newOrderFixture(t)

	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.friesID, Quantity: 2}})

	if len(f.orderRepo.notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.orderRepo.notifications))
	}
	n := f.orderRepo.notifications[0]
	if n.OrderID != order.ID {
		t.Errorf("notification order id mismatch: %s != %s", n.OrderID, order.ID)
	}
	if n.RestaurantID != f.restaurantID {
		t.Errorf("notification restaurant mismatch: %s", n.RestaurantID)
	}
	if n.TableNumber != 7 {
		t.Errorf("expected table number 7, got %d", n.TableNumber)
	}
	if n.TotalAmount != 8.50 {
		t.Errorf("expected notification total 8.50, got %v", n.TotalAmount)
	}
}

func TestOrderService_Place_PublishesCreatedEvent(t *testing.T) {
	f := newOrderFixture(t)

	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	published := f.publisher.published()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	if published[0].Type != events.OrderCreated {
		t.Errorf("expected %s, got %s", events.OrderCreated, published[0].Type)
	}
	if published[0].OrderID != order.ID {
		t.Errorf("event order id mismatch")
	}
	if published[0].RestaurantID != f.restaurantID {
		t.Errorf("event restaurant id mismatch")
	}
}

func TestOrderService_SetStatus(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	updated, err := f.service.SetStatus(context.Background(), f.ownerID, &dto.SetStatusRequest{
		OrderID:   order.ID,
		NewStatus: string(domain.StatusPreparing),
	})
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != domain.StatusPreparing {
		t.Errorf("expected preparing, got %s", updated.Status)
	}

	published := f.publisher.published()
	last := published[len(published)-1]
	if last.Type != events.OrderUpdated {
		t.Errorf("expected %s event, got %s", events.OrderUpdated, last.Type)
	}
	if last.Status != domain.StatusPreparing {
		t.Errorf("expected event status preparing, got %s", last.Status)
	}
}

func TestOrderService_SetStatus_RejectsIllegalTransition(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	// pending cannot jump straight to ready
	_, err := f.service.SetStatus(context.Background(), f.ownerID, &dto.SetStatusRequest{
		OrderID:   order.ID,
		NewStatus: string(domain.StatusReady),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	got, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	if got.Status != domain.StatusPending {
		t.Errorf("status should stay pending, got %s", got.Status)
	}
}

func TestOrderService_SetStatus_ConcurrentWriterLoses(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	ctx := context.Background()
	if _, err := f.service.SetStatus(ctx, f.ownerID, &dto.SetStatusRequest{
		OrderID:   order.ID,
		NewStatus: string(domain.StatusPreparing),
	}); err != nil {
		t.Fatalf("set status: %v", err)
	}

	// Between our snapshot and our write, another dashboard advances the
	// order. The conditional update must reject our now-stale transition.
	f.orderRepo.afterMeta = func() {
		f.orderRepo.afterMeta = nil
		if err := f.orderRepo.UpdateStatus(ctx, order.ID, domain.StatusPreparing, domain.StatusReady); err != nil {
			t.Fatalf("concurrent advance: %v", err)
		}
	}

	_, err := f.service.SetStatus(ctx, f.ownerID, &dto.SetStatusRequest{
		OrderID:   order.ID,
		NewStatus: string(domain.StatusReady),
	})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for the stale writer, got %v", err)
	}

	got, _ := f.orderRepo.GetByID(ctx, order.ID)
	if got.Status != domain.StatusReady {
		t.Errorf("expected ready after the winning transition, got %s", got.Status)
	}

	// Only the winner's state is current; the loser published nothing new
	published := f.publisher.published()
	last := published[len(published)-1]
	if last.Type != events.OrderUpdated || last.Status != domain.StatusPreparing {
		t.Errorf("stale writer must not publish an update, last event: %+v", last)
	}
}

func TestOrderService_SetStatus_FinalizedIsImmutable(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	ctx := context.Background()
	for _, status := range []domain.OrderStatus{domain.StatusPreparing, domain.StatusReady, domain.StatusFinalized} {
		if _, err := f.service.SetStatus(ctx, f.ownerID, &dto.SetStatusRequest{
			OrderID:   order.ID,
			NewStatus: string(status),
		}); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	_, err := f.service.SetStatus(ctx, f.ownerID, &dto.SetStatusRequest{
		OrderID:   order.ID,
		NewStatus: string(domain.StatusPending),
	})
	if !errors.Is(err, domain.ErrOrderFinalized) {
		t.Fatalf("expected ErrOrderFinalized, got %v", err)
	}

	if err := f.service.Delete(ctx, f.ownerID, order.ID); !errors.Is(err, domain.ErrOrderFinalized) {
		t.Fatalf("expected ErrOrderFinalized on delete, got %v", err)
	}
}

func TestOrderService_TenantIsolation(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	ctx := context.Background()

	_, err := f.service.SetStatus(ctx, f.otherOwnerID, &dto.SetStatusRequest{
		OrderID:   order.ID,
		NewStatus: string(domain.StatusPreparing),
	})
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on set status, got %v", err)
	}

	if err := f.service.Delete(ctx, f.otherOwnerID, order.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}

	if _, err := f.service.ListForRestaurant(ctx, f.otherOwnerID, f.restaurantID); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on list, got %v", err)
	}

	got, _ := f.orderRepo.GetByID(ctx, order.ID)
	if got == nil || got.Status != domain.StatusPending {
		t.Errorf("order must be untouched after cross-tenant attempts")
	}
}

func TestOrderService_Delete_PublishesDeletedEvent(t *testing.T) {
	f := newOrderFixture(t)
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.burgerID, Quantity: 1}})

	if err := f.service.Delete(context.Background(), f.ownerID, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got, _ := f.orderRepo.GetByID(context.Background(), order.ID); got != nil {
		t.Errorf("order should be gone")
	}

	published := f.publisher.published()
	last := published[len(published)-1]
	if last.Type != events.OrderDeleted {
		t.Errorf("expected %s event, got %s", events.OrderDeleted, last.Type)
	}
}

func TestOrderService_TotalsUseServerPricesOnly(t *testing.T) {
	f := newOrderFixture(t)

	// Quantity x price rounding: 3 * 4.25 = 12.75 exactly
	order := f.place(t, []dto.OrderItemInput{{MenuItemID: f.friesID, Quantity: 3}})
	if order.TotalAmount != 12.75 {
		t.Errorf("expected 12.75, got %v", order.TotalAmount)
	}

	// Later price edits must not change the stored snapshot
	f.orderRepo.menuItems[f.friesID].Price = 9.99
	got, _ := f.orderRepo.GetByID(context.Background(), order.ID)
	if got.TotalAmount != 12.75 {
		t.Errorf("total changed after price edit: %v", got.TotalAmount)
	}

	if time.Since(got.CreatedAt) > time.Minute {
		t.Errorf("created_at not set")
	}
}
