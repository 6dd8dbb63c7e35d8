package reference

import "context"

// Repository maps payment-provider reference ids back to the user that
// generated them. A retried bill produces a fresh reference id; orphaned
// ids are harmless and stay until the process exits.
type Repository interface {
	Put(ctx context.Context, referenceID, userID string) error
	// Resolve returns the user a reference id belongs to.
	Resolve(ctx context.Context, referenceID string) (string, bool, error)
	// Delete consumes a reference id after the order it pointed at is final.
	Delete(ctx context.Context, referenceID string) error
}
