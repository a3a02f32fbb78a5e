package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
)

// RestaurantService defines the interface for restaurant management operations
type RestaurantService interface {
	// Create creates a restaurant owned by the calling user
	Create(ctx context.Context, ownerUserID string, req *dto.CreateRestaurantRequest) (*domain.Restaurant, error)
	// Get retrieves one of the caller's restaurants
	Get(ctx context.Context, ownerUserID, restaurantID string) (*domain.Restaurant, error)
	// List retrieves all restaurants of the caller
	List(ctx context.Context, ownerUserID string) ([]*domain.Restaurant, error)
	// Update updates one of the caller's restaurants
	Update(ctx context.Context, ownerUserID, restaurantID string, req *dto.UpdateRestaurantRequest) (*domain.Restaurant, error)
	// ResolveOwned maps the caller to a restaurant they own. An empty
	// restaurantID picks the caller's oldest restaurant.
	ResolveOwned(ctx context.Context, ownerUserID, restaurantID string) (*domain.Restaurant, error)
}

// restaurantService implements RestaurantService
type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

// NewRestaurantService creates a new RestaurantService
func NewRestaurantService(restaurantRepo repository.RestaurantRepository) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
	}
}

// Create creates a restaurant owned by the calling user
func (s *restaurantService) Create(ctx context.Context, ownerUserID string, req *dto.CreateRestaurantRequest) (*domain.Restaurant, error) {
	now := time.Now()
	restaurant := &domain.Restaurant{
		ID:             uuid.New().String(),
		Name:           req.Name,
		OwnerUserID:    ownerUserID,
		LogoURL:        req.LogoURL,
		Address:        req.Address,
		OpeningHours:   req.OpeningHours,
		PaymentMethods: req.PaymentMethods,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if restaurant.PaymentMethods == nil {
		restaurant.PaymentMethods = []string{}
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Get retrieves one of the caller's restaurants
func (s *restaurantService) Get(ctx context.Context, ownerUserID, restaurantID string) (*domain.Restaurant, error) {
	return s.getOwned(ctx, ownerUserID, restaurantID)
}

// List retrieves all restaurants of the caller
func (s *restaurantService) List(ctx context.Context, ownerUserID string) ([]*domain.Restaurant, error) {
	return s.restaurantRepo.ListByOwner(ctx, ownerUserID)
}

// Update updates one of the caller's restaurants
func (s *restaurantService) Update(ctx context.Context, ownerUserID, restaurantID string, req *dto.UpdateRestaurantRequest) (*domain.Restaurant, error) {
	restaurant, err := s.getOwned(ctx, ownerUserID, restaurantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.LogoURL != nil {
		restaurant.LogoURL = *req.LogoURL
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.OpeningHours != nil {
		restaurant.OpeningHours = *req.OpeningHours
	}
	if req.PaymentMethods != nil {
		restaurant.PaymentMethods = *req.PaymentMethods
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// ResolveOwned maps the caller to a restaurant they own
func (s *restaurantService) ResolveOwned(ctx context.Context, ownerUserID, restaurantID string) (*domain.Restaurant, error) {
	if restaurantID != "" {
		return s.getOwned(ctx, ownerUserID, restaurantID)
	}

	restaurants, err := s.restaurantRepo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, domain.ErrRestaurantNotFound
	}
	return restaurants[0], nil
}

func (s *restaurantService) getOwned(ctx context.Context, ownerUserID, restaurantID string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	if restaurant.OwnerUserID != ownerUserID {
		return nil, domain.ErrNotOwner
	}
	return restaurant, nil
}
