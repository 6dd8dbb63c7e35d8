package order

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

type fileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFile returns an order store that appends one JSON record per line.
func NewFile(path string) Repository {
	return &fileRepo{path: path}
}

func (r *fileRepo) Append(_ context.Context, order domain.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open orders file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	return nil
}
