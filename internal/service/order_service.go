package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/events"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
	"github.com/agilqrcode-web/agil-scan-order-sub000/pkg/logger"
)

// OrderService defines the interface for order intake and lifecycle
type OrderService interface {
	// Place atomically creates an order from a customer's cart. Prices come
	// from the menu at insert time; the whole order fails if any line
	// references an unknown item.
	Place(ctx context.Context, req *dto.PlaceOrderRequest) (*domain.Order, error)
	// GetByID retrieves an order with its items (public: customers track
	// their order by the id returned from Place)
	GetByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListForTable retrieves a table's orders in placement order (public)
	ListForTable(ctx context.Context, tableID string) ([]*domain.Order, error)
	// ListForRestaurant retrieves the caller's restaurant orders, newest first
	ListForRestaurant(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Order, error)
	// SetStatus advances an order along the status machine
	SetStatus(ctx context.Context, ownerUserID string, req *dto.SetStatusRequest) (*domain.Order, error)
	// Delete removes a non-finalized order
	Delete(ctx context.Context, ownerUserID, orderID string) error
}

// orderService implements OrderService
type orderService struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	publisher      events.Publisher
	log            *logger.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	publisher events.Publisher,
	log *logger.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		publisher:      publisher,
		log:            log,
	}
}

// Place atomically creates an order from a customer's cart
func (s *orderService) Place(ctx context.Context, req *dto.PlaceOrderRequest) (*domain.Order, error) {
	now := time.Now()
	order := &domain.Order{
		ID:           uuid.New().String(),
		TableID:      req.TableID,
		CustomerName: strings.TrimSpace(req.CustomerName),
		Observations: strings.TrimSpace(req.Observations),
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	lines := make([]repository.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, repository.OrderLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, lines); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewOrderEvent(events.OrderCreated, order))
	return order, nil
}

// GetByID retrieves an order with its items
func (s *orderService) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListForTable retrieves a table's orders in placement order
func (s *orderService) ListForTable(ctx context.Context, tableID string) ([]*domain.Order, error) {
	return s.orderRepo.ListByTable(ctx, tableID)
}

// ListForRestaurant retrieves the caller's restaurant orders, newest first
func (s *orderService) ListForRestaurant(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Order, error) {
	if err := s.checkRestaurantOwnership(ctx, ownerUserID, restaurantID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListByRestaurant(ctx, restaurantID)
}

// SetStatus advances an order along the status machine. Finalized orders
// are immutable; every other illegal jump is an invalid transition.
func (s *orderService) SetStatus(ctx context.Context, ownerUserID string, req *dto.SetStatusRequest) (*domain.Order, error) {
	meta, err := s.ownedOrder(ctx, ownerUserID, req.OrderID)
	if err != nil {
		return nil, err
	}

	target := domain.OrderStatus(req.NewStatus)
	if meta.Status.IsTerminal() {
		return nil, domain.ErrOrderFinalized
	}
	if !meta.Status.CanTransitionTo(target) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.orderRepo.UpdateStatus(ctx, req.OrderID, meta.Status, target); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	s.publish(ctx, events.NewOrderEvent(events.OrderUpdated, order))
	return order, nil
}

// Delete removes a non-finalized order
func (s *orderService) Delete(ctx context.Context, ownerUserID, orderID string) error {
	meta, err := s.ownedOrder(ctx, ownerUserID, orderID)
	if err != nil {
		return err
	}
	if meta.Status.IsTerminal() {
		return domain.ErrOrderFinalized
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrOrderNotFound
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.publish(ctx, events.NewOrderEvent(events.OrderDeleted, order))
	return nil
}

// ownedOrder loads order meta and verifies the caller owns its restaurant
func (s *orderService) ownedOrder(ctx context.Context, ownerUserID, orderID string) (*repository.OrderMeta, error) {
	meta, err := s.orderRepo.GetMeta(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, domain.ErrOrderNotFound
	}
	if err := s.checkRestaurantOwnership(ctx, ownerUserID, meta.RestaurantID); err != nil {
		return nil, err
	}
	return meta, nil
}

func (s *orderService) checkRestaurantOwnership(ctx context.Context, ownerUserID, restaurantID string) error {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant == nil {
		return domain.ErrRestaurantNotFound
	}
	if restaurant.OwnerUserID != ownerUserID {
		return domain.ErrNotOwner
	}
	return nil
}

// publish sends an order event after the database work committed. A failed
// publish is logged; the request already succeeded.
func (s *orderService) publish(ctx context.Context, event events.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.log.Error("order event publish failed",
			zap.String("type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}
