package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/utils"
	"github.com/papercomputeco/parrot/server/worker"
)

// handleRoot serves the unauthenticated index with the endpoint map.
func (s *Server) handleRoot(c *fiber.Ctx) error {
	return c.JSON(map[string]any{
		"message": "parrot: dummy OpenAI-compatible API server",
		"version": utils.Version,
		"endpoints": map[string]string{
			"models":           "/v1/models",
			"chat_completions": "/v1/chat/completions",
			"embeddings":       "/v1/embeddings",
			"health":           "/health",
		},
		"documentation": "https://platform.openai.com/docs/api-reference",
	})
}

// handleHealth serves the unauthenticated health check with uptime and the
// aggregate counters from the accounting pool.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	totals := s.pool.Totals()

	return c.JSON(map[string]any{
		"status":         "healthy",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        utils.Version,
		"uptime_seconds": int64(time.Since(s.started).Seconds()),
		"requests": map[string]int64{
			"total":            totals.Requests,
			"chat_completions": totals.ByEndpoint[worker.EndpointChatCompletions],
			"embeddings":       totals.ByEndpoint[worker.EndpointEmbeddings],
			"dropped_samples":  totals.Dropped,
		},
		"tokens": map[string]int64{
			"prompt":     totals.PromptTokens,
			"completion": totals.CompletionTokens,
			"total":      totals.TotalTokens,
		},
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(oai.NewError(oai.ErrTypeInvalidRequest, msg))
}

func modelNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(oai.NewError(oai.ErrTypeNotFound, "Model not found"))
}
