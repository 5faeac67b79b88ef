// Package server initializes and runs the card service: it connects to
// PostgreSQL, applies schema migrations, wires the blob store client and the
// card service, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/vkarpenko/valentine/internal/logging"
	"github.com/vkarpenko/valentine/internal/server/blob"
	"github.com/vkarpenko/valentine/internal/server/cards"
	"github.com/vkarpenko/valentine/internal/server/config"
	hs "github.com/vkarpenko/valentine/internal/server/http"
	"github.com/vkarpenko/valentine/internal/server/migrations"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	cardService *cards.Service
	db          *sql.DB
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := pingWithBackoff(ctx, db); err != nil {
		return nil, fmt.Errorf("db unreachable: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	uploader, err := blob.NewClient(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob client init error: %w", err)
	}

	repo := cards.NewPostgresRepository(db)
	cs := cards.NewService(repo, uploader, logger, c.PublicBaseURL, c.RequestTimeout)

	return &App{config: c, logger: logger, cardService: cs, db: db}, nil
}

// pingWithBackoff waits for the database to come up, treating connect
// timeouts as retryable. Containerized Postgres is often still starting when
// the server process launches.
func pingWithBackoff(ctx context.Context, db *sql.DB) error {
	b := retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := hs.NewServer(app.config.EndpointAddrHTTP, app.cardService, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
