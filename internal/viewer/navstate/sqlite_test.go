package navstate

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/vkarpenko/valentine/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE nav_state (
  card_id TEXT PRIMARY KEY,
  screen TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestStore_SetGetOverwrite(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cardA", ScreenPhotos))

	got, err := s.Get(ctx, "cardA")
	require.NoError(t, err)
	assert.Equal(t, ScreenPhotos, got)

	// every transition overwrites
	require.NoError(t, s.Set(ctx, "cardA", ScreenLetter))
	got, err = s.Get(ctx, "cardA")
	require.NoError(t, err)
	assert.Equal(t, ScreenLetter, got)
}

func TestStore_GetUnknownCard(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	_, err := s.Get(context.Background(), "never-seen")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_NoCrossCardLeakage(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cardA", ScreenLetter))

	// a fresh card is unaffected
	_, err := s.Get(ctx, "cardB")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, s.Set(ctx, "cardB", ScreenFlowers))

	gotA, err := s.Get(ctx, "cardA")
	require.NoError(t, err)
	gotB, err := s.Get(ctx, "cardB")
	require.NoError(t, err)

	assert.Equal(t, ScreenLetter, gotA)
	assert.Equal(t, ScreenFlowers, gotB)
}

func TestStore_Clear(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cardA", ScreenPhotos))
	require.NoError(t, s.Clear(ctx, "cardA"))

	_, err := s.Get(ctx, "cardA")
	require.ErrorIs(t, err, common.ErrNotFound)

	// clearing an absent key is fine
	require.NoError(t, s.Clear(ctx, "cardA"))
}
