package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/cristianortiz/escrowAuction/internal/shared/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Server struct {
	app             *fiber.App
	shutdownTimeout time.Duration
}

var log = logger.GetLogger()

// RouteRegistrar mounts a module's routes on the shared app
type RouteRegistrar interface {
	RegisterRoutes(router fiber.Router)
}

func NewServer(shutdownTimeout time.Duration, modules ...RouteRegistrar) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "escrowAuction",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	// request logging
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("HTTP request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("remote_addr", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	for _, m := range modules {
		m.RegisterRoutes(app)
	}

	return &Server{app: app, shutdownTimeout: shutdownTimeout}
}

// errorHandler renders fiber errors (unknown route, upgrade required, panics) in the API envelope
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code == fiber.StatusInternalServerError {
		log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"message": "request failed",
		"error":   err.Error(),
	})
}

// App exposes the fiber app for in-process tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on addr until ctx is cancelled, then drains connections within the shutdown timeout
func (s *Server) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		log.Info("Shutting down HTTP server...", zap.Duration("timeout", s.shutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("HTTP server started", zap.String("addr", addr))
	return s.app.Listen(addr)
}
