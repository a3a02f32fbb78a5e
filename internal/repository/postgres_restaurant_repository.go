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

// PostgresRestaurantRepository implements RestaurantRepository using PostgreSQL
type PostgresRestaurantRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRestaurantRepository creates a new PostgresRestaurantRepository
func NewPostgresRestaurantRepository(pool *pgxpool.Pool) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{pool: pool}
}

// Create creates a new restaurant
func (r *PostgresRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, owner_user_id, logo_url, address, opening_hours, payment_methods, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		restaurant.OwnerUserID,
		nullStringOrValue(restaurant.LogoURL),
		nullStringOrValue(restaurant.Address),
		nullStringOrValue(restaurant.OpeningHours),
		restaurant.PaymentMethods,
		restaurant.CreatedAt,
		restaurant.UpdatedAt,
	)
	return err
}

// GetByID retrieves a restaurant by ID
func (r *PostgresRestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := `
		SELECT id, name, owner_user_id, COALESCE(logo_url, '') as logo_url, COALESCE(address, '') as address,
		       COALESCE(opening_hours, '') as opening_hours, COALESCE(payment_methods, '{}') as payment_methods,
		       created_at, updated_at, deleted_at
		FROM restaurants
		WHERE id = $1 AND deleted_at IS NULL
	`
	restaurant := &domain.Restaurant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&restaurant.ID,
		&restaurant.Name,
		&restaurant.OwnerUserID,
		&restaurant.LogoURL,
		&restaurant.Address,
		&restaurant.OpeningHours,
		&restaurant.PaymentMethods,
		&restaurant.CreatedAt,
		&restaurant.UpdatedAt,
		&restaurant.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}

// ListByOwner retrieves all restaurants owned by a user, newest first
func (r *PostgresRestaurantRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]*domain.Restaurant, error) {
	query := `
		SELECT id, name, owner_user_id, COALESCE(logo_url, '') as logo_url, COALESCE(address, '') as address,
		       COALESCE(opening_hours, '') as opening_hours, COALESCE(payment_methods, '{}') as payment_methods,
		       created_at, updated_at, deleted_at
		FROM restaurants
		WHERE owner_user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0)
	for rows.Next() {
		restaurant := &domain.Restaurant{}
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.Name,
			&restaurant.OwnerUserID,
			&restaurant.LogoURL,
			&restaurant.Address,
			&restaurant.OpeningHours,
			&restaurant.PaymentMethods,
			&restaurant.CreatedAt,
			&restaurant.UpdatedAt,
			&restaurant.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}

	return restaurants, rows.Err()
}

// Update updates a restaurant
func (r *PostgresRestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, logo_url = $3, address = $4, opening_hours = $5, payment_methods = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`
	restaurant.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		restaurant.ID,
		restaurant.Name,
		nullStringOrValue(restaurant.LogoURL),
		nullStringOrValue(restaurant.Address),
		nullStringOrValue(restaurant.OpeningHours),
		restaurant.PaymentMethods,
		restaurant.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restaurant not found or already deleted")
	}

	return nil
}

// nullStringOrValue returns nil for empty strings, otherwise returns the value
func nullStringOrValue(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
