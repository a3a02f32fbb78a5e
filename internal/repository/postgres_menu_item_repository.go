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

// PostgresMenuItemRepository implements MenuItemRepository using PostgreSQL
type PostgresMenuItemRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMenuItemRepository creates a new PostgresMenuItemRepository
func NewPostgresMenuItemRepository(pool *pgxpool.Pool) *PostgresMenuItemRepository {
	return &PostgresMenuItemRepository{pool: pool}
}

// Create creates a new menu item
func (r *PostgresMenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, menu_id, category_id, name, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.MenuID,
		item.CategoryID,
		item.Name,
		nullStringOrValue(item.Description),
		item.Price,
		nullStringOrValue(item.ImageURL),
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

// GetByID retrieves a menu item by ID
func (r *PostgresMenuItemRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `
		SELECT id, menu_id, category_id, name, COALESCE(description, '') as description, price,
		       COALESCE(image_url, '') as image_url, created_at, updated_at
		FROM menu_items
		WHERE id = $1
	`
	item := &domain.MenuItem{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.MenuID,
		&item.CategoryID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageURL,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// ListByMenu retrieves all items of a menu grouped by category position
func (r *PostgresMenuItemRepository) ListByMenu(ctx context.Context, menuID string) ([]*domain.MenuItem, error) {
	query := `
		SELECT i.id, i.menu_id, i.category_id, i.name, COALESCE(i.description, '') as description, i.price,
		       COALESCE(i.image_url, '') as image_url, i.created_at, i.updated_at
		FROM menu_items i
		JOIN menu_categories c ON c.id = i.category_id
		WHERE i.menu_id = $1
		ORDER BY c.position ASC, i.name ASC
	`
	rows, err := r.pool.Query(ctx, query, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		item := &domain.MenuItem{}
		err := rows.Scan(
			&item.ID,
			&item.MenuID,
			&item.CategoryID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImageURL,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Update updates a menu item. Existing orders keep their price snapshots.
func (r *PostgresMenuItemRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, image_url = $5, updated_at = $6
		WHERE id = $1
	`
	item.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		nullStringOrValue(item.Description),
		item.Price,
		nullStringOrValue(item.ImageURL),
		item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu item not found")
	}

	return nil
}

// Delete deletes a menu item
func (r *PostgresMenuItemRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("menu item not found")
	}

	return nil
}
