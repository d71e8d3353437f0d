package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ian-deans/bamazon-example/internal/core/domain"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) FetchAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, stock FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice, &item.Stock); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

// DecrementStock only applies when the resulting stock stays
// non-negative; the guard rides on the UPDATE itself.
func (m *MySQLAdapter) DecrementStock(ctx context.Context, itemID int64, quantity int) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE items
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?`,
		quantity, itemID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock for item %d: %w", itemID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %d: %w", itemID, ErrInsufficientStock)
	}

	return nil
}

func (m *MySQLAdapter) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, total, status, created_at)
		VALUES (?, ?, ?, ?)`,
		order.ID, order.Total, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, quantity, unit_price, line_cost)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, line.ItemID, line.Quantity, line.UnitPrice, line.LineCost,
		)
		if err != nil {
			return fmt.Errorf("insert order line for item %d: %w", line.ItemID, err)
		}
	}

	return tx.Commit()
}
