package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns an order store backed by the orders table.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Append(ctx context.Context, order domain.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("marshal order lines: %w", err)
	}

	const q = `
INSERT INTO orders (order_id, user_id, customer_name, address, ordered_at, lines, total, payment_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
`
	if _, err := r.pool.Exec(ctx, q,
		order.OrderID,
		order.UserID,
		order.CustomerName,
		order.Address,
		order.Timestamp,
		lines,
		order.Total,
		order.PaymentID,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}
