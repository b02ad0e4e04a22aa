// Package server implements parrot's OpenAI-compatible HTTP surface: the
// fiber app, its middleware, and the handlers that fabricate chat
// completions, embeddings, and model catalog responses.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/papercomputeco/parrot/pkg/completion"
	"github.com/papercomputeco/parrot/pkg/config"
	"github.com/papercomputeco/parrot/pkg/embedding"
	"github.com/papercomputeco/parrot/pkg/latency"
	"github.com/papercomputeco/parrot/pkg/logger"
	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/reply"
	"github.com/papercomputeco/parrot/pkg/rng"
	"github.com/papercomputeco/parrot/pkg/tokens"
	"github.com/papercomputeco/parrot/server/worker"
)

// Server fabricates OpenAI-shaped responses from canned data. All synthesis
// components are built once from the config at construction; a running
// server never mutates them.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	app    *fiber.App
	pool   *worker.Pool

	assembler   *completion.Assembler
	emitter     *completion.Emitter
	synthesizer *embedding.Synthesizer
	estimator   tokens.Estimator
	sim         *latency.Simulator

	started time.Time

	// ctx outlives individual requests; streaming goroutines watch it so
	// shutdown interrupts in-flight streams at a chunk boundary.
	ctx     context.Context
	cancel  context.CancelFunc
	streams sync.WaitGroup
}

// New builds a Server from the given config. The config must already be
// validated; New only fails on component construction (an unknown estimator
// mode or an invalid reply override).
func New(cfg *config.Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = logger.Nop()
	}

	src := rng.FromSeed(cfg.Seed)

	lib, err := reply.NewLibrary(cfg.Replies, cfg.Triggers)
	if err != nil {
		return nil, fmt.Errorf("building reply library: %w", err)
	}

	est, err := tokens.ForMode(cfg.Tokens.Estimator)
	if err != nil {
		return nil, fmt.Errorf("building token estimator: %w", err)
	}

	sim := latency.New(latency.Timing{
		CompletionMin: time.Duration(cfg.Timing.ChatMinDelayMS) * time.Millisecond,
		CompletionMax: time.Duration(cfg.Timing.ChatMaxDelayMS) * time.Millisecond,
		Embedding:     time.Duration(cfg.Timing.EmbeddingDelayMS) * time.Millisecond,
		Chunk:         time.Duration(cfg.Timing.ChunkDelayMS) * time.Millisecond,
		Multipliers:   cfg.Multipliers(),
	}, src)

	pool, err := worker.NewPool(&worker.Config{
		Logger: log.With("component", "accounting"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating accounting pool: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage:  true,
		EnableMethodNotAllowed: true,
		ErrorHandler:           errorHandler,
	})

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		cfg:    cfg,
		logger: log.With("component", "server"),
		app:    app,
		pool:   pool,
		assembler: completion.NewAssembler(
			reply.NewSelector(lib, src),
			est,
		),
		emitter: completion.NewEmitter(completion.EmitterConfig{
			Mode:         cfg.Stream.Mode,
			Window:       cfg.Stream.Window,
			IncludeUsage: cfg.Stream.IncludeUsage,
		}, sim),
		synthesizer: embedding.New(cfg.Embedding.Dimensions, cfg.Embedding.Deterministic, src),
		estimator:   est,
		sim:         sim,
		started:     time.Now(),
		ctx:         ctx,
		cancel:      cancel,
	}

	app.Use(requestid.New())
	app.Use(s.accessLog)
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(compress.New())

	app.Get("/", s.handleRoot)
	app.Get("/health", s.handleHealth)

	v1 := app.Group("/v1", s.requireAuth)
	v1.Post("/chat/completions", s.handleChatCompletions)
	v1.Post("/embeddings", s.handleEmbeddings)
	v1.Get("/models", s.handleListModels)
	v1.Get("/models/:id", s.handleGetModel)

	return s, nil
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting server",
		"listen", s.cfg.Addr(),
		"models", len(s.cfg.Models),
		"auth", s.cfg.Auth.APIKey != "",
	)
	return s.app.Listen(s.cfg.Addr())
}

// RunWithListener starts the server using the provided listener.
func (s *Server) RunWithListener(ln net.Listener) error {
	s.logger.Info("starting server", "listen", ln.Addr().String())
	return s.app.Listener(ln)
}

// Shutdown stops accepting connections, interrupts in-flight streams at
// their next chunk boundary, and drains the accounting pool.
func (s *Server) Shutdown() error {
	s.cancel()
	err := s.app.Shutdown()
	s.streams.Wait()
	s.pool.Close()
	return err
}

// Totals reports the aggregated usage counters, for the shutdown summary.
func (s *Server) Totals() worker.Totals {
	return s.pool.Totals()
}

// errorHandler translates errors that escape the handler chain into the
// wire-format envelope. Router misses arrive here as fiber errors; anything
// else is a recovered panic or an internal failure.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return c.Status(fe.Code).JSON(oai.NewError(oai.ErrTypeNotFound, "Endpoint not found"))
		case fiber.StatusMethodNotAllowed:
			return c.Status(fe.Code).JSON(oai.NewError(oai.ErrTypeMethodNotAllowed, "Method not allowed"))
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(oai.NewError(oai.ErrTypeInternal, "Internal server error"))
}
