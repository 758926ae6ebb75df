// Package server is the chat backend the study assistant talks to. It
// answers POST /api/chat with an LLM provider and reports health on
// GET /api/ping.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/abhisek/ailearn/internal/llm"
)

const (
	defaultTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Provider answers chat questions. Nil means the AI service is not
	// configured and /api/chat answers 500.
	Provider llm.Provider

	// Model is reported by /api/ping.
	Model string

	// Version is reported by /api/ping.
	Version string

	// Timeout bounds one provider call. Default: 30s.
	Timeout time.Duration

	Logger *slog.Logger
}

// Server wraps the fiber app serving the chat API.
type Server struct {
	app      *fiber.App
	provider llm.Provider
	model    string
	version  string
	timeout  time.Duration
	validate *validator.Validate
	log      *slog.Logger
}

// New builds the server and registers its routes.
func New(opts Options) *Server {
	s := &Server{
		provider: opts.Provider,
		model:    opts.Model,
		version:  opts.Version,
		timeout:  opts.Timeout,
		validate: validator.New(),
		log:      opts.Logger,
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "ailearn",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New(recover.Config{EnableStackTrace: true, StackTraceHandler: s.logPanic}))
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(s.logRequests)

	api := s.app.Group("/api", cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Content-Type, Authorization",
		ExposeHeaders: "Content-Type, Content-Length",
	}))
	api.Post("/chat", s.handleChat)
	api.Get("/ping", s.handlePing)

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("chat backend listening", "addr", addr, "ai_configured", s.provider != nil)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down chat backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}
	s.log.Info("request",
		"id", c.Locals("requestid"),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"dur", time.Since(start),
	)
	return err
}

func (s *Server) logPanic(c *fiber.Ctx, e any) {
	s.log.Error("panic while handling request",
		"id", c.Locals("requestid"),
		"path", c.Path(),
		"panic", e,
	)
}

// handleError renders errors that escape handlers. Routing errors keep
// their status; anything else, including recovered panics, is a 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	s.log.Error("unexpected error", "id", c.Locals("requestid"), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(chatResponse{Response: msgUnexpected})
}
