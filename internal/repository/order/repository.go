package order

import (
	"context"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

// Repository is an append-only store of finalized orders.
type Repository interface {
	Append(ctx context.Context, order domain.Order) error
}
