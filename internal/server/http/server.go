// Package http exposes the card service over HTTP using Fiber.
package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vkarpenko/valentine/internal/logging"
	"github.com/vkarpenko/valentine/internal/server/cards"
)

// CardService is the part of the cards service the HTTP layer consumes.
type CardService interface {
	Create(ctx context.Context, req cards.CreateRequest) (*cards.CreateResult, error)
	Get(ctx context.Context, id string) (*cards.Card, error)
}

// Server wraps the Fiber application.
type Server struct {
	app     *fiber.App
	service CardService
	log     logging.Logger
	addr    string
}

// NewServer wires handlers and middleware.
func NewServer(addr string, service CardService, log logging.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		BodyLimit:             20 * 1024 * 1024, // two photos plus form fields
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	app.Use(cors.New())

	srv := &Server{app: app, service: service, log: log, addr: addr}
	srv.registerRoutes()
	return srv
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	s.log.Info(ctx, "card service listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.app.Post("/api/valentines", s.handleCreate)
	s.app.Get("/valentines/:id", s.handleGet)
}
