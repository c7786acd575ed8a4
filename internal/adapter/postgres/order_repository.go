package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// ProcessOrder hands the whole sale to the process_order function, which
// inserts the order and its lines and deducts stock in one transaction.
func (r *orderRepository) ProcessOrder(ctx context.Context, cmd interfaces.ProcessOrderCommand) (int64, error) {
	items, err := json.Marshal(cmd.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode order items: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, `SELECT process_order($1, $2, $3::jsonb)`,
		cmd.CustomerName, cmd.Total, string(items),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to process order: %w", mapError(err))
	}
	return id, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, customer_name, status, total, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", mapError(err))
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[int64]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemsQuery := `
		SELECT oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.unit_price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		ORDER BY oi.id
	`
	itemRows, err := r.db.Query(ctx, itemsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", mapError(err))
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID int64
		var item domain.OrderItem
		if err := itemRows.Scan(&orderID, &item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return orders, itemRows.Err()
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, customer_name, status, total, created_at
		FROM orders
		WHERE id = $1
	`
	var o domain.Order
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerName, &o.Status, &o.Total, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", id, mapError(err))
	}

	itemsQuery := `
		SELECT oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.unit_price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`
	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", mapError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
