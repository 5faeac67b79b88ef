package navstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vkarpenko/valentine/internal/common"
	"github.com/vkarpenko/valentine/internal/dbx"
)

// SQLiteStore implements Store using a DBTX (either *sql.DB or *sql.Tx).
// It is the desktop equivalent of the browser's localStorage entry per card.
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a new SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the saved screen for cardID.
func (s *SQLiteStore) Get(ctx context.Context, cardID string) (Screen, error) {
	query := `select screen from nav_state where card_id = ?`

	var screen string
	if err := s.db.QueryRowContext(ctx, query, cardID).Scan(&screen); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("failed to select nav state: %w", err)
	}

	return Screen(screen), nil
}

// Set upserts the screen for cardID.
func (s *SQLiteStore) Set(ctx context.Context, cardID string, screen Screen) error {
	query := `insert into nav_state (card_id, screen, updated_at)
			values (?, ?, ?)
			ON CONFLICT(card_id) DO UPDATE SET screen = excluded.screen,
				updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, cardID, string(screen), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert nav state: %w", err)
	}
	return nil
}

// Clear removes the saved screen for cardID.
func (s *SQLiteStore) Clear(ctx context.Context, cardID string) error {
	query := `delete from nav_state where card_id = ?`
	if _, err := s.db.ExecContext(ctx, query, cardID); err != nil {
		return fmt.Errorf("failed to delete nav state: %w", err)
	}
	return nil
}
