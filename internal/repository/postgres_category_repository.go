package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

// Create creates a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO menu_categories (id, menu_id, name, position)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.MenuID,
		category.Name,
		category.Position,
	)
	return err
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `
		SELECT id, menu_id, name, position
		FROM menu_categories
		WHERE id = $1
	`
	category := &domain.Category{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.MenuID,
		&category.Name,
		&category.Position,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

// ListByMenu retrieves all categories of a menu in display order
func (r *PostgresCategoryRepository) ListByMenu(ctx context.Context, menuID string) ([]*domain.Category, error) {
	query := `
		SELECT id, menu_id, name, position
		FROM menu_categories
		WHERE menu_id = $1
		ORDER BY position ASC, name ASC
	`
	rows, err := r.pool.Query(ctx, query, menuID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category := &domain.Category{}
		err := rows.Scan(
			&category.ID,
			&category.MenuID,
			&category.Name,
			&category.Position,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// UpdatePosition moves a category to a new display position
func (r *PostgresCategoryRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	result, err := r.pool.Exec(ctx, `UPDATE menu_categories SET position = $2 WHERE id = $1`, id, position)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}

// Delete deletes a category and cascades to its items
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM menu_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("category not found")
	}

	return nil
}
