package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// PostgresNotificationRepository implements NotificationRepository using PostgreSQL
type PostgresNotificationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresNotificationRepository creates a new PostgresNotificationRepository
func NewPostgresNotificationRepository(pool *pgxpool.Pool) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{pool: pool}
}

// ListByRestaurant retrieves all notifications of a restaurant, newest first
func (r *PostgresNotificationRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Notification, error) {
	query := `
		SELECT id, restaurant_id, order_id, table_number, customer_name, total_amount, is_read, created_at
		FROM notifications
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.RestaurantID,
			&n.OrderID,
			&n.TableNumber,
			&n.CustomerName,
			&n.TotalAmount,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// GetByID retrieves a notification by ID
func (r *PostgresNotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	query := `
		SELECT id, restaurant_id, order_id, table_number, customer_name, total_amount, is_read, created_at
		FROM notifications
		WHERE id = $1
	`
	n := &domain.Notification{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&n.ID,
		&n.RestaurantID,
		&n.OrderID,
		&n.TableNumber,
		&n.CustomerName,
		&n.TotalAmount,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

// MarkRead marks a notification as read
func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}

// Delete deletes a notification
func (r *PostgresNotificationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found")
	}

	return nil
}
