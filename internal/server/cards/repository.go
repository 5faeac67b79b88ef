package cards

import "context"

// Repository describes persistence operations for Card records.
// Implementations are typically backed by PostgreSQL.
type Repository interface {
	// Insert stores a new card. It fails with common.ErrDuplicateID when a
	// card with the same id already exists.
	Insert(ctx context.Context, card *Card) error

	// GetByID returns a card by its identifier, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*Card, error)

	// IncrementViewCount bumps the view counter by one. Best-effort: callers
	// are expected to log a failure rather than surface it.
	IncrementViewCount(ctx context.Context, id string) error
}
