package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// PostgresMenuRepository implements MenuRepository using PostgreSQL
type PostgresMenuRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMenuRepository creates a new PostgresMenuRepository
func NewPostgresMenuRepository(pool *pgxpool.Pool) *PostgresMenuRepository {
	return &PostgresMenuRepository{pool: pool}
}

// Create creates a new menu
func (r *PostgresMenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	query := `
		INSERT INTO menus (id, restaurant_id, name, banner_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		menu.ID,
		menu.RestaurantID,
		menu.Name,
		nullStringOrValue(menu.BannerURL),
		menu.IsActive,
		menu.CreatedAt,
		menu.UpdatedAt,
	)
	return err
}

// GetByID retrieves a menu by ID
func (r *PostgresMenuRepository) GetByID(ctx context.Context, id string) (*domain.Menu, error) {
	query := `
		SELECT id, restaurant_id, name, COALESCE(banner_url, '') as banner_url, is_active, created_at, updated_at
		FROM menus
		WHERE id = $1
	`
	menu := &domain.Menu{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&menu.ID,
		&menu.RestaurantID,
		&menu.Name,
		&menu.BannerURL,
		&menu.IsActive,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return menu, nil
}

// ListByRestaurant retrieves all menus of a restaurant, newest first
func (r *PostgresMenuRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Menu, error) {
	query := `
		SELECT id, restaurant_id, name, COALESCE(banner_url, '') as banner_url, is_active, created_at, updated_at
		FROM menus
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	menus := make([]*domain.Menu, 0)
	for rows.Next() {
		menu := &domain.Menu{}
		err := rows.Scan(
			&menu.ID,
			&menu.RestaurantID,
			&menu.Name,
			&menu.BannerURL,
			&menu.IsActive,
			&menu.CreatedAt,
			&menu.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}

	return menus, rows.Err()
}

// GetActiveByRestaurant retrieves the most recently updated active menu.
// When several menus are active the latest edit wins.
func (r *PostgresMenuRepository) GetActiveByRestaurant(ctx context.Context, restaurantID string) (*domain.Menu, error) {
	query := `
		SELECT id, restaurant_id, name, COALESCE(banner_url, '') as banner_url, is_active, created_at, updated_at
		FROM menus
		WHERE restaurant_id = $1 AND is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`
	menu := &domain.Menu{}
	err := r.pool.QueryRow(ctx, query, restaurantID).Scan(
		&menu.ID,
		&menu.RestaurantID,
		&menu.Name,
		&menu.BannerURL,
		&menu.IsActive,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return menu, nil
}

// Update updates a menu
func (r *PostgresMenuRepository) Update(ctx context.Context, menu *domain.Menu) error {
	query := `
		UPDATE menus
		SET name = $2, banner_url = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`
	menu.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		menu.ID,
		menu.Name,
		nullStringOrValue(menu.BannerURL),
		menu.IsActive,
		menu.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu not found")
	}

	return nil
}

// Delete deletes a menu and cascades to its categories and items
func (r *PostgresMenuRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM menus WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu not found")
	}

	return nil
}
