package navstate

import "context"

// Store maps a card identifier to the viewer's last-known screen for it.
// State for one card id never leaks into another.
type Store interface {
	// Get returns the saved screen for cardID, or common.ErrNotFound when the
	// viewer has never opened that card.
	Get(ctx context.Context, cardID string) (Screen, error)

	// Set overwrites the saved screen for cardID.
	Set(ctx context.Context, cardID string, screen Screen) error

	// Clear removes the saved screen for cardID. Clearing an absent key is
	// not an error.
	Clear(ctx context.Context, cardID string) error
}
