package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
)

// MenuService defines the interface for menu, category and item management
type MenuService interface {
	// CreateMenu creates a menu under one of the caller's restaurants
	CreateMenu(ctx context.Context, ownerUserID string, req *dto.CreateMenuRequest) (*domain.Menu, error)
	// ListMenus retrieves all menus of one of the caller's restaurants
	ListMenus(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Menu, error)
	// UpdateMenu updates a menu, including its is_active flag
	UpdateMenu(ctx context.Context, ownerUserID, menuID string, req *dto.UpdateMenuRequest) (*domain.Menu, error)
	// DeleteMenu deletes a menu with its categories and items
	DeleteMenu(ctx context.Context, ownerUserID, menuID string) error

	// CreateCategory creates a category under a menu
	CreateCategory(ctx context.Context, ownerUserID string, req *dto.CreateCategoryRequest) (*domain.Category, error)
	// ReorderCategory moves a category to a new display position
	ReorderCategory(ctx context.Context, ownerUserID string, req *dto.ReorderCategoryRequest) error
	// DeleteCategory deletes a category with its items
	DeleteCategory(ctx context.Context, ownerUserID, categoryID string) error

	// CreateItem creates a menu item
	CreateItem(ctx context.Context, ownerUserID string, req *dto.CreateMenuItemRequest) (*domain.MenuItem, error)
	// UpdateItem updates a menu item. Placed orders keep their snapshots.
	UpdateItem(ctx context.Context, ownerUserID, itemID string, req *dto.UpdateMenuItemRequest) (*domain.MenuItem, error)
	// DeleteItem deletes a menu item
	DeleteItem(ctx context.Context, ownerUserID, itemID string) error

	// PublicActiveMenu returns the customer view of a restaurant's active menu
	PublicActiveMenu(ctx context.Context, restaurantID string) (*dto.PublicMenuResponse, error)
}

// menuService implements MenuService
type menuService struct {
	menuRepo       repository.MenuRepository
	categoryRepo   repository.CategoryRepository
	itemRepo       repository.MenuItemRepository
	restaurantRepo repository.RestaurantRepository
}

// NewMenuService creates a new MenuService
func NewMenuService(
	menuRepo repository.MenuRepository,
	categoryRepo repository.CategoryRepository,
	itemRepo repository.MenuItemRepository,
	restaurantRepo repository.RestaurantRepository,
) MenuService {
	return &menuService{
		menuRepo:       menuRepo,
		categoryRepo:   categoryRepo,
		itemRepo:       itemRepo,
		restaurantRepo: restaurantRepo,
	}
}

// CreateMenu creates a menu under one of the caller's restaurants
func (s *menuService) CreateMenu(ctx context.Context, ownerUserID string, req *dto.CreateMenuRequest) (*domain.Menu, error) {
	if err := s.checkRestaurantOwnership(ctx, ownerUserID, req.RestaurantID); err != nil {
		return nil, err
	}

	now := time.Now()
	menu := &domain.Menu{
		ID:           uuid.New().String(),
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		BannerURL:    req.BannerURL,
		IsActive:     req.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// ListMenus retrieves all menus of one of the caller's restaurants
func (s *menuService) ListMenus(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Menu, error) {
	if err := s.checkRestaurantOwnership(ctx, ownerUserID, restaurantID); err != nil {
		return nil, err
	}
	return s.menuRepo.ListByRestaurant(ctx, restaurantID)
}

// UpdateMenu updates a menu, including its is_active flag
func (s *menuService) UpdateMenu(ctx context.Context, ownerUserID, menuID string, req *dto.UpdateMenuRequest) (*domain.Menu, error) {
	menu, err := s.ownedMenu(ctx, ownerUserID, menuID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.BannerURL != nil {
		menu.BannerURL = *req.BannerURL
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu deletes a menu with its categories and items
func (s *menuService) DeleteMenu(ctx context.Context, ownerUserID, menuID string) error {
	if _, err := s.ownedMenu(ctx, ownerUserID, menuID); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, menuID)
}

// CreateCategory creates a category under a menu
func (s *menuService) CreateCategory(ctx context.Context, ownerUserID string, req *dto.CreateCategoryRequest) (*domain.Category, error) {
	if _, err := s.ownedMenu(ctx, ownerUserID, req.MenuID); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:       uuid.New().String(),
		MenuID:   req.MenuID,
		Name:     req.Name,
		Position: req.Position,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ReorderCategory moves a category to a new display position
func (s *menuService) ReorderCategory(ctx context.Context, ownerUserID string, req *dto.ReorderCategoryRequest) error {
	if _, err := s.ownedCategory(ctx, ownerUserID, req.CategoryID); err != nil {
		return err
	}
	return s.categoryRepo.UpdatePosition(ctx, req.CategoryID, req.Position)
}

// DeleteCategory deletes a category with its items
func (s *menuService) DeleteCategory(ctx context.Context, ownerUserID, categoryID string) error {
	if _, err := s.ownedCategory(ctx, ownerUserID, categoryID); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, categoryID)
}

// CreateItem creates a menu item
func (s *menuService) CreateItem(ctx context.Context, ownerUserID string, req *dto.CreateMenuItemRequest) (*domain.MenuItem, error) {
	if _, err := s.ownedMenu(ctx, ownerUserID, req.MenuID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.MenuID != req.MenuID {
		return nil, domain.ErrCategoryNotFound
	}

	now := time.Now()
	item := &domain.MenuItem{
		ID:          uuid.New().String(),
		MenuID:      req.MenuID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       domain.RoundToCents(req.Price),
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates a menu item. Placed orders keep their snapshots.
func (s *menuService) UpdateItem(ctx context.Context, ownerUserID, itemID string, req *dto.UpdateMenuItemRequest) (*domain.MenuItem, error) {
	item, err := s.ownedItem(ctx, ownerUserID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = domain.RoundToCents(*req.Price)
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes a menu item
func (s *menuService) DeleteItem(ctx context.Context, ownerUserID, itemID string) error {
	if _, err := s.ownedItem(ctx, ownerUserID, itemID); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// PublicActiveMenu returns the customer view of a restaurant's active menu
func (s *menuService) PublicActiveMenu(ctx context.Context, restaurantID string) (*dto.PublicMenuResponse, error) {
	menu, err := s.menuRepo.GetActiveByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrNoActiveMenu
	}

	categories, err := s.categoryRepo.ListByMenu(ctx, menu.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByMenu(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]domain.MenuItem, len(categories))
	for _, item := range items {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], *item)
	}

	resp := &dto.PublicMenuResponse{
		MenuID:       menu.ID,
		RestaurantID: menu.RestaurantID,
		Name:         menu.Name,
		BannerURL:    menu.BannerURL,
		Categories:   make([]dto.PublicCategory, 0, len(categories)),
	}
	for _, category := range categories {
		section := dto.PublicCategory{
			ID:       category.ID,
			Name:     category.Name,
			Position: category.Position,
			Items:    byCategory[category.ID],
		}
		if section.Items == nil {
			section.Items = []domain.MenuItem{}
		}
		resp.Categories = append(resp.Categories, section)
	}

	return resp, nil
}

func (s *menuService) checkRestaurantOwnership(ctx context.Context, ownerUserID, restaurantID string) error {
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

func (s *menuService) ownedMenu(ctx context.Context, ownerUserID, menuID string) (*domain.Menu, error) {
	menu, err := s.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrMenuNotFound
	}
	if err := s.checkRestaurantOwnership(ctx, ownerUserID, menu.RestaurantID); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *menuService) ownedCategory(ctx context.Context, ownerUserID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound
	}
	if _, err := s.ownedMenu(ctx, ownerUserID, category.MenuID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *menuService) ownedItem(ctx context.Context, ownerUserID, itemID string) (*domain.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrMenuItemNotFound
	}
	if _, err := s.ownedMenu(ctx, ownerUserID, item.MenuID); err != nil {
		return nil, err
	}
	return item, nil
}
