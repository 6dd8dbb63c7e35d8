package reference

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu   sync.Mutex
	refs map[string]string
}

// NewMemory returns an in-process reference map.
func NewMemory() Repository {
	return &memoryRepo{refs: make(map[string]string)}
}

func (r *memoryRepo) Put(_ context.Context, referenceID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs[referenceID] = userID
	return nil
}

func (r *memoryRepo) Resolve(_ context.Context, referenceID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.refs[referenceID]
	return userID, ok, nil
}

func (r *memoryRepo) Delete(_ context.Context, referenceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refs, referenceID)
	return nil
}
