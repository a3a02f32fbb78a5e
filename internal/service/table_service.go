package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/dto"
	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/repository"
)

// qrTokenBytes yields 32 hex characters per token
const qrTokenBytes = 16

// TableService defines the interface for table management and QR resolution
type TableService interface {
	// Create creates a table with a freshly issued QR token
	Create(ctx context.Context, ownerUserID string, req *dto.CreateTableRequest) (*domain.Table, error)
	// Get retrieves one of the caller's tables
	Get(ctx context.Context, ownerUserID, tableID string) (*domain.Table, error)
	// List retrieves the tables of one of the caller's restaurants
	List(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Table, error)
	// Delete deletes one of the caller's tables
	Delete(ctx context.Context, ownerUserID, tableID string) error
	// Resolve maps a public QR token to table identity and the active menu.
	// Exact match only; unknown tokens are indistinguishable from absent ones.
	Resolve(ctx context.Context, token string) (*dto.ResolveTableResponse, error)
}

// tableService implements TableService
type tableService struct {
	tableRepo      repository.TableRepository
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
}

// NewTableService creates a new TableService
func NewTableService(tableRepo repository.TableRepository, restaurantRepo repository.RestaurantRepository, menuRepo repository.MenuRepository) TableService {
	return &tableService{
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
	}
}

// Create creates a table with a freshly issued QR token
func (s *tableService) Create(ctx context.Context, ownerUserID string, req *dto.CreateTableRequest) (*domain.Table, error) {
	if err := s.checkOwnership(ctx, ownerUserID, req.RestaurantID); err != nil {
		return nil, err
	}

	taken, err := s.tableRepo.ExistsNumber(ctx, req.RestaurantID, req.TableNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrTableNumberTaken
	}

	token, err := issueToken()
	if err != nil {
		return nil, err
	}

	table := &domain.Table{
		ID:               uuid.New().String(),
		RestaurantID:     req.RestaurantID,
		TableNumber:      req.TableNumber,
		QRCodeIdentifier: token,
		CreatedAt:        time.Now(),
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Get retrieves one of the caller's tables
func (s *tableService) Get(ctx context.Context, ownerUserID, tableID string) (*domain.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrTableNotFound
	}
	if err := s.checkOwnership(ctx, ownerUserID, table.RestaurantID); err != nil {
		return nil, err
	}
	return table, nil
}

// List retrieves the tables of one of the caller's restaurants
func (s *tableService) List(ctx context.Context, ownerUserID, restaurantID string) ([]*domain.Table, error) {
	if err := s.checkOwnership(ctx, ownerUserID, restaurantID); err != nil {
		return nil, err
	}
	return s.tableRepo.ListByRestaurant(ctx, restaurantID)
}

// Delete deletes one of the caller's tables
func (s *tableService) Delete(ctx context.Context, ownerUserID, tableID string) error {
	if _, err := s.Get(ctx, ownerUserID, tableID); err != nil {
		return err
	}
	return s.tableRepo.Delete(ctx, tableID)
}

// Resolve maps a public QR token to table identity and the active menu
func (s *tableService) Resolve(ctx context.Context, token string) (*dto.ResolveTableResponse, error) {
	table, err := s.tableRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrTableNotFound
	}

	resp := &dto.ResolveTableResponse{
		TableID:      table.ID,
		TableNumber:  table.TableNumber,
		RestaurantID: table.RestaurantID,
	}

	menu, err := s.menuRepo.GetActiveByRestaurant(ctx, table.RestaurantID)
	if err != nil {
		return nil, err
	}
	if menu != nil {
		resp.MenuID = menu.ID
	}

	return resp, nil
}

func (s *tableService) checkOwnership(ctx context.Context, ownerUserID, restaurantID string) error {
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

// issueToken generates an unguessable 32 hex character table token
func issueToken() (string, error) {
	buf := make([]byte, qrTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate table token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
