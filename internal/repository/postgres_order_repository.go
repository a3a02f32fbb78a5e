package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agilqrcode-web/agil-scan-order-sub000/internal/domain"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

// CreateWithItems inserts an order, its items and the restaurant notification
// in a single transaction. Prices come from the menu_items table at insert
// time, never from the caller. Any unknown menu item aborts the whole
// transaction with domain.ErrMenuItemNotFound.
func (r *PostgresOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order, lines []OrderLine) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Resolve the owning restaurant through the table.
	err = tx.QueryRow(ctx,
		`SELECT t.table_number, t.restaurant_id FROM tables t WHERE t.id = $1`,
		order.TableID,
	).Scan(&order.TableNumber, &order.RestaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTableNotFound
		}
		return err
	}

	itemIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.MenuItemID)
	}

	// Items are only orderable from the menus of the table's own restaurant.
	rows, err := tx.Query(ctx, `
		SELECT mi.id, mi.name, mi.price
		FROM menu_items mi
		JOIN menus m ON m.id = mi.menu_id
		WHERE mi.id = ANY($1) AND m.restaurant_id = $2
	`, itemIDs, order.RestaurantID)
	if err != nil {
		return err
	}

	type priced struct {
		name  string
		price float64
	}
	known := make(map[string]priced, len(lines))
	for rows.Next() {
		var id string
		var p priced
		if err := rows.Scan(&id, &p.name, &p.price); err != nil {
			rows.Close()
			return err
		}
		known[id] = p
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	order.TotalAmount = 0
	order.Items = make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, ok := known[line.MenuItemID]
		if !ok {
			return domain.ErrMenuItemNotFound
		}
		order.TotalAmount = domain.RoundToCents(order.TotalAmount + domain.LineTotal(p.price, line.Quantity))
		order.Items = append(order.Items, domain.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			MenuItemID:  line.MenuItemID,
			ItemName:    p.name,
			Quantity:    line.Quantity,
			PriceAtTime: p.price,
		})
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, table_id, customer_name, observations, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		order.ID,
		order.TableID,
		order.CustomerName,
		nullStringOrValue(order.Observations),
		order.Status,
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, menu_item_id, quantity, price_at_time)
			VALUES ($1, $2, $3, $4, $5)
		`,
			item.ID,
			item.OrderID,
			item.MenuItemID,
			item.Quantity,
			item.PriceAtTime,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO notifications (id, restaurant_id, order_id, table_number, customer_name, total_amount, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7)
	`,
		uuid.New().String(),
		order.RestaurantID,
		order.ID,
		order.TableNumber,
		order.CustomerName,
		order.TotalAmount,
		order.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const orderSelect = `
	SELECT o.id, o.table_id, t.table_number, t.restaurant_id, o.customer_name,
	       COALESCE(o.observations, '') as observations, o.status, o.total_amount, o.created_at, o.updated_at
	FROM orders o
	JOIN tables t ON t.id = o.table_id
`

// GetByID retrieves an order with its items
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id).Scan(
		&order.ID,
		&order.TableID,
		&order.TableNumber,
		&order.RestaurantID,
		&order.CustomerName,
		&order.Observations,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	items, err := r.listItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *PostgresOrderRepository) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, COALESCE(mi.name, '') as item_name, oi.quantity, oi.price_at_time
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		item := domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuItemID,
			&item.ItemName,
			&item.Quantity,
			&item.PriceAtTime,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListByTable retrieves all orders placed at a table in placement order.
// The id tie-break keeps the ordering stable for equal timestamps.
func (r *PostgresOrderRepository) ListByTable(ctx context.Context, tableID string) ([]*domain.Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.table_id = $1 ORDER BY o.created_at ASC, o.id ASC`, tableID)
}

// ListByRestaurant retrieves all orders of a restaurant, newest first
func (r *PostgresOrderRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Order, error) {
	return r.list(ctx, orderSelect+` WHERE t.restaurant_id = $1 ORDER BY o.created_at DESC`, restaurantID)
}

func (r *PostgresOrderRepository) list(ctx context.Context, query string, arg interface{}) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.TableID,
			&order.TableNumber,
			&order.RestaurantID,
			&order.CustomerName,
			&order.Observations,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.listItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

// GetMeta retrieves the owning restaurant and current status of an order
func (r *PostgresOrderRepository) GetMeta(ctx context.Context, orderID string) (*OrderMeta, error) {
	query := `
		SELECT o.id, t.restaurant_id, o.status
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE o.id = $1
	`
	meta := &OrderMeta{}
	err := r.pool.QueryRow(ctx, query, orderID).Scan(&meta.OrderID, &meta.RestaurantID, &meta.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return meta, nil
}

// UpdateStatus advances an order from one status to another. The update is
// conditional on the current status, so two writers that validated against
// the same snapshot cannot both apply; the loser sees ErrInvalidTransition.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to domain.OrderStatus) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		orderID, from, to,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

// Delete deletes an order and cascades to its items
func (r *PostgresOrderRepository) Delete(ctx context.Context, orderID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order not found")
	}

	return nil
}
