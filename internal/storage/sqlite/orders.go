package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/tuskshop/internal/core"
)

type OrdersRepo struct {
	db *sql.DB
}

func NewOrdersRepo(db *sql.DB) *OrdersRepo {
	return &OrdersRepo{db: db}
}

func (r *OrdersRepo) FindOrderByID(ctx context.Context, id int64) (*core.Order, error) {
	query := `SELECT id, customer_name, status, shipping_provider, eta, total_amount FROM orders WHERE id = ?`

	var o core.Order
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&o.ID, &o.CustomerName, &o.Status, &o.ShippingProvider, &o.ETA, &o.TotalAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order %d: %w", id, err)
	}
	return &o, nil
}
