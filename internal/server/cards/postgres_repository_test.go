package cards

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vkarpenko/valentine/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func sampleCard() *Card {
	return &Card{
		ID:            "abcDEF1234",
		RecipientName: "Ana",
		SenderName:    "Sam",
		ProposalText:  "Ana, will you be my valentine?",
		LoveLetter:    "I love you",
		FlowerMsg1:    DefaultFlowerMessages[0],
		FlowerMsg2:    DefaultFlowerMessages[1],
		FlowerMsg3:    DefaultFlowerMessages[2],
		FlowerMsg4:    DefaultFlowerMessages[3],
		StampType:     DefaultStamp,
		CreatedAt:     time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC),
	}
}

const insertPattern = `(?s)^INSERT\s+INTO\s+valentines\s*\(.+\)\s*VALUES\s*\(.+\)\s*$`

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertPattern).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), sampleCard()); err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_DuplicateID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertPattern).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "valentines_pkey"})

	err := repo.Insert(context.Background(), sampleCard())
	if !errors.Is(err, common.ErrDuplicateID) {
		t.Fatalf("want common.ErrDuplicateID, got %v", err)
	}
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertPattern).
		WillReturnError(errors.New("db down"))

	err := repo.Insert(context.Background(), sampleCard())
	if err == nil || errors.Is(err, common.ErrDuplicateID) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const selectPattern = `(?s)^SELECT\s+id,.+FROM\s+valentines\s+WHERE\s+id\s*=\s*\$1\s*$`

func cardColumns() []string {
	return []string{
		"id", "recipient_name", "sender_name", "proposal_text", "love_letter",
		"short_note", "photo1_url", "photo1_caption", "photo2_url", "photo2_caption",
		"flower_msg_1", "flower_msg_2", "flower_msg_3", "flower_msg_4",
		"stamp_type", "created_at", "view_count",
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(cardColumns()).AddRow(
		"abcDEF1234", "Ana", "Sam", "Ana, will you be my valentine?", "I love you",
		nil, "https://cdn/p1.jpg", "us", nil, nil,
		"f1", "f2", "f3", "f4",
		"cats-love", created, int64(7),
	)
	mock.ExpectQuery(selectPattern).WithArgs("abcDEF1234").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "abcDEF1234")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "abcDEF1234" || got.SenderName != "Sam" {
		t.Fatalf("unexpected card: %+v", got)
	}
	if got.ShortNote.Valid {
		t.Fatalf("short_note should be null")
	}
	if !got.Photo1URL.Valid || got.Photo1URL.String != "https://cdn/p1.jpg" {
		t.Fatalf("unexpected photo1_url: %+v", got.Photo1URL)
	}
	if got.ViewCount != 7 {
		t.Fatalf("unexpected view count: %d", got.ViewCount)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectPattern).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

const updatePattern = `(?s)^UPDATE\s+valentines\s+SET\s+view_count\s*=\s*view_count\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1\s*$`

func TestIncrementViewCount_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updatePattern).WithArgs("abcDEF1234").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.IncrementViewCount(context.Background(), "abcDEF1234"); err != nil {
		t.Fatalf("IncrementViewCount error: %v", err)
	}
}

func TestIncrementViewCount_UnknownID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updatePattern).WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementViewCount(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
