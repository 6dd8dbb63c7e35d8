package cart

import (
	"context"
	"sync"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

type memoryRepo struct {
	mu    sync.Mutex
	carts map[string][]domain.CartLine
}

// NewMemory returns an in-process cart store. Carts live for the process
// lifetime unless explicitly cleared.
func NewMemory() Repository {
	return &memoryRepo{carts: make(map[string][]domain.CartLine)}
}

func (r *memoryRepo) Append(_ context.Context, userID string, line domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[userID] = append(r.carts[userID], line)
	return nil
}

func (r *memoryRepo) Lines(_ context.Context, userID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[userID]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *memoryRepo) Take(_ context.Context, userID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[userID]
	delete(r.carts, userID)
	return lines, nil
}

func (r *memoryRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
