package service

import (
	"context"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
)

// NotificationService defines the interface for order notification management
type NotificationService interface {
	// List retrieves the notifications of one of the caller's restaurants
	List(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Notification, error)
	// MarkRead marks one of the caller's notifications as read
	MarkRead(ctx context.Context, ownerUserID, notificationID string) error
	// Delete deletes one of the caller's notifications
	Delete(ctx context.Context, ownerUserID, notificationID string) error
}

// notificationService implements NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
	restaurantRepo   repository.RestaurantRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, restaurantRepo repository.RestaurantRepository) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		restaurantRepo:   restaurantRepo,
	}
}

// List retrieves the notifications of one of the caller's restaurants
func (s *notificationService) List(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Notification, error) {
	if err := s.checkOwnership(ctx, ownerUserID, restaurantID); err != nil {
		return nil, err
	}
	return s.notificationRepo.ListByRestaurant(ctx, restaurantID)
}

// MarkRead marks one of the caller's notifications as read
func (s *notificationService) MarkRead(ctx context.Context, ownerUserID, notificationID string) error {
	if _, err := s.owned(ctx, ownerUserID, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// Delete deletes one of the caller's notifications
func (s *notificationService) Delete(ctx context.Context, ownerUserID, notificationID string) error {
	if _, err := s.owned(ctx, ownerUserID, notificationID); err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, notificationID)
}

func (s *notificationService) owned(ctx context.Context, ownerUserID, notificationID string) (*domain.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, domain.ErrNotificationNotFound
	}
	if err := s.checkOwnership(ctx, ownerUserID, notification.RestaurantID); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) checkOwnership(ctx context.Context, ownerUserID, restaurantID string) error {
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
