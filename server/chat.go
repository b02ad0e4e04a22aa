package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/completion"
	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/utils"
	"github.com/papercomputeco/parrot/server/worker"
)

// defaultChatModel is assumed when a request omits the model field, same as
// the upstream API's oldest default.
const defaultChatModel = "gpt-3.5-turbo"

// handleChatCompletions serves POST /v1/chat/completions: validate, wait out
// the simulated inference delay, assemble a canned reply, then answer with a
// single JSON object or an SSE chunk stream.
func (s *Server) handleChatCompletions(c *fiber.Ctx) error {
	start := time.Now()

	var req oai.ChatCompletionRequest
	if len(c.Body()) == 0 || json.Unmarshal(c.Body(), &req) != nil {
		return badRequest(c, "Request body is required")
	}

	if len(req.Messages) == 0 {
		return badRequest(c, "messages is required")
	}
	if max := s.cfg.Limits.MaxMessages; len(req.Messages) > max {
		return badRequest(c, fmt.Sprintf("messages exceeds maximum of %d", max))
	}
	for _, m := range req.Messages {
		if max := s.cfg.Limits.MaxContentChars; len(m.Content) > max {
			return badRequest(c, fmt.Sprintf("message content exceeds maximum of %d characters", max))
		}
	}
	if req.MaxTokens != nil {
		if mt := *req.MaxTokens; mt <= 0 || mt > s.cfg.Limits.MaxCompletionTokens {
			return badRequest(c, fmt.Sprintf("max_tokens must be between 1 and %d", s.cfg.Limits.MaxCompletionTokens))
		}
	}

	model := req.Model
	if model == "" {
		model = defaultChatModel
	}
	if _, ok := s.cfg.Model(model); !ok {
		return modelNotFound(c)
	}

	if err := s.sim.Completion(c.Context(), model); err != nil {
		// Client went away during the simulated delay.
		return nil
	}

	comp := s.assembler.Assemble(model, req.Messages, completion.Options{MaxTokens: req.MaxTokens})

	s.logger.Debug("assembled completion",
		"id", comp.ID,
		"model", model,
		"finish", comp.Choices[0].FinishReason,
		"stream", req.Stream,
		"preview", utils.Truncate(comp.Choices[0].Message.Content, 80),
	)

	if req.Stream {
		return s.streamCompletion(c, comp, start)
	}

	s.pool.Enqueue(worker.Sample{
		Endpoint: worker.EndpointChatCompletions,
		Model:    model,
		Usage:    comp.Usage,
		Duration: time.Since(start),
	})

	return c.JSON(comp)
}
