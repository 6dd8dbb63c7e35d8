package session

import (
	"context"

	"github.com/sankezzz/UdyamSakhi-Backend/internal/domain"
)

// Repository tracks per-user conversation state for the text-driven flow.
type Repository interface {
	Get(ctx context.Context, userID string) (domain.ConversationState, error)
	Set(ctx context.Context, userID string, state domain.ConversationState) error
	Clear(ctx context.Context, userID string) error
}
