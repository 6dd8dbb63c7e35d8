package session

import (
	"context"
	"sync"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

type memoryRepo struct {
	mu     sync.Mutex
	states map[string]domain.ConversationState
}

// NewMemory returns an in-process session store. Missing users are Idle.
func NewMemory() Repository {
	return &memoryRepo{states: make(map[string]domain.ConversationState)}
}

func (r *memoryRepo) Get(_ context.Context, userID string) (domain.ConversationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[userID], nil
}

func (r *memoryRepo) Set(_ context.Context, userID string, state domain.ConversationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[userID] = state
	return nil
}

func (r *memoryRepo) Clear(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, userID)
	return nil
}
