package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vkarpenko/valentine/internal/common"
	"github.com/vkarpenko/valentine/internal/dbx"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository using a DBTX
// (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new card in a single statement. A primary-key conflict on id
// maps to common.ErrDuplicateID so that the service can regenerate.
func (r *PostgresRepository) Insert(ctx context.Context, c *Card) error {

	query :=
		`INSERT INTO valentines (id, recipient_name, sender_name, proposal_text, love_letter,
			short_note, photo1_url, photo1_caption, photo2_url, photo2_caption,
			flower_msg_1, flower_msg_2, flower_msg_3, flower_msg_4,
			stamp_type, created_at, view_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 `

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.RecipientName, c.SenderName, c.ProposalText, c.LoveLetter,
		c.ShortNote, c.Photo1URL, c.Photo1Caption, c.Photo2URL, c.Photo2Caption,
		c.FlowerMsg1, c.FlowerMsg2, c.FlowerMsg3, c.FlowerMsg4,
		c.StampType, c.CreatedAt, c.ViewCount)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrDuplicateID
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

// GetByID returns the full card record for id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Card, error) {

	query :=
		`SELECT id, recipient_name, sender_name, proposal_text, love_letter,
			short_note, photo1_url, photo1_caption, photo2_url, photo2_caption,
			flower_msg_1, flower_msg_2, flower_msg_3, flower_msg_4,
			stamp_type, created_at, view_count
		 FROM valentines
		 WHERE id = $1
		 `

	c := &Card{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.RecipientName, &c.SenderName, &c.ProposalText, &c.LoveLetter,
		&c.ShortNote, &c.Photo1URL, &c.Photo1Caption, &c.Photo2URL, &c.Photo2Caption,
		&c.FlowerMsg1, &c.FlowerMsg2, &c.FlowerMsg3, &c.FlowerMsg4,
		&c.StampType, &c.CreatedAt, &c.ViewCount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return c, nil
}

// IncrementViewCount bumps the counter with a single non-transactional
// update. Lost updates under concurrency are acceptable, the counter is
// informational.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id string) error {

	query := `UPDATE valentines SET view_count = view_count + 1 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}

	return nil
}
