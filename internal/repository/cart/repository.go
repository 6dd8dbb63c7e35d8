package cart

import (
	"context"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

// Repository stores per-user carts. Implementations must make every
// operation atomic per user so concurrent webhook deliveries cannot
// interleave a read-modify-write.
type Repository interface {
	// Append adds a line to the user's cart, creating it on first use.
	Append(ctx context.Context, userID string, line domain.CartLine) error
	// Lines returns a copy of the user's cart in selection order.
	Lines(ctx context.Context, userID string) ([]domain.CartLine, error)
	// Take atomically returns the cart lines and clears the cart. An
	// empty result means there was nothing to take.
	Take(ctx context.Context, userID string) ([]domain.CartLine, error)
	// Clear drops the user's cart.
	Clear(ctx context.Context, userID string) error
}
