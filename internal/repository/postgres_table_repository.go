package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// PostgresTableRepository implements TableRepository using PostgreSQL
type PostgresTableRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTableRepository creates a new PostgresTableRepository
func NewPostgresTableRepository(pool *pgxpool.Pool) *PostgresTableRepository {
	return &PostgresTableRepository{pool: pool}
}

// Create creates a new table
func (r *PostgresTableRepository) Create(ctx context.Context, table *domain.Table) error {
	query := `
		INSERT INTO tables (id, restaurant_id, table_number, qr_code_identifier, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		table.ID,
		table.RestaurantID,
		table.TableNumber,
		table.QRCodeIdentifier,
		table.CreatedAt,
	)
	return err
}

// GetByID retrieves a table by ID
func (r *PostgresTableRepository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	query := `
		SELECT id, restaurant_id, table_number, qr_code_identifier, created_at
		FROM tables
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

// GetByToken retrieves a table by its QR code identifier
func (r *PostgresTableRepository) GetByToken(ctx context.Context, token string) (*domain.Table, error) {
	query := `
		SELECT id, restaurant_id, table_number, qr_code_identifier, created_at
		FROM tables
		WHERE qr_code_identifier = $1
	`
	return r.scanOne(ctx, query, token)
}

func (r *PostgresTableRepository) scanOne(ctx context.Context, query string, arg interface{}) (*domain.Table, error) {
	table := &domain.Table{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&table.ID,
		&table.RestaurantID,
		&table.TableNumber,
		&table.QRCodeIdentifier,
		&table.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return table, nil
}

// ListByRestaurant retrieves all tables of a restaurant ordered by table number
func (r *PostgresTableRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Table, error) {
	query := `
		SELECT id, restaurant_id, table_number, qr_code_identifier, created_at
		FROM tables
		WHERE restaurant_id = $1
		ORDER BY table_number ASC
	`
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		table := &domain.Table{}
		err := rows.Scan(
			&table.ID,
			&table.RestaurantID,
			&table.TableNumber,
			&table.QRCodeIdentifier,
			&table.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, rows.Err()
}

// ExistsNumber checks if a table number is already used within a restaurant
func (r *PostgresTableRepository) ExistsNumber(ctx context.Context, restaurantID string, tableNumber int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tables WHERE restaurant_id = $1 AND table_number = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, restaurantID, tableNumber).Scan(&exists)
	return exists, err
}

// Delete deletes a table
func (r *PostgresTableRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("table not found")
	}

	return nil
}
