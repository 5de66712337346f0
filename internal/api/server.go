// Package api exposes the detector over HTTP: a detection endpoint
// backed by one backend plus a small in-memory result cache.
package api

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/modai-labs/paritycheck/internal/backend"
	"github.com/modai-labs/paritycheck/internal/config"
	"github.com/modai-labs/paritycheck/internal/detector"
)

type DetectRequest struct {
	Text string `json:"text"`
}

type DetectResponse struct {
	Probability float64        `json:"probability"`
	Label       detector.Label `json:"label"`
	Cached      bool           `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server serves detection requests from a single backend.
type Server struct {
	App     *fiber.App
	config  *config.ServerEnvConfig
	backend backend.Backend
	cache   *resultCache
}

// NewServer wires the fiber app, middleware, and routes.
func NewServer(cfg *config.ServerEnvConfig, b backend.Backend) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server configuration cannot be nil")
	}
	if b == nil {
		return nil, errors.New("server backend cannot be nil")
	}

	app := fiber.New(fiber.Config{
		Prefork:      false,
		ErrorHandler: fiberErrHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		BodyLimit:    cfg.BodySizeLimit,
	})

	app.Use(recover.New()) // add panic recovery
	app.Use(compress.New(compress.Config{Level: compress.LevelBestCompression}))

	s := &Server{
		App:     app,
		config:  cfg,
		backend: b,
		cache:   newResultCache(cfg.CacheSize),
	}

	app.Get("/healthz", s.handleHealth)
	app.Post("/detect", s.handleDetect)

	return s, nil
}

func fiberErrHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", ctx.Path()).
		Str("method", ctx.Method()).
		Msg("fiber error handler triggered")

	return ctx.Status(code).JSON(errorResponse{Error: err.Error()})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "backend": s.backend.Name()})
}

func (s *Server) handleDetect(c *fiber.Ctx) error {
	var req DetectRequest
	if err := c.BodyParser(&req); err != nil {
		log.Error().Err(err).Msg("failed to parse detect request body")
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "text cannot be empty"})
	}

	if res, ok := s.cache.get(req.Text); ok {
		return c.JSON(DetectResponse{Probability: res.Probability, Label: res.Label, Cached: true})
	}

	res, err := s.backend.Infer(c.Context(), req.Text)
	if err != nil {
		log.Error().Err(err).Str("backend", s.backend.Name()).Msg("detection failed")
		if errors.Is(err, backend.ErrUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: "detector backend unavailable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "detection failed"})
	}

	s.cache.put(req.Text, res)
	return c.JSON(DetectResponse{Probability: res.Probability, Label: res.Label})
}

// Start blocks serving requests until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Address, s.config.Port)
	log.Info().Str("addr", addr).Msg("starting detection API")
	return s.App.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
