package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/tokens"
	"github.com/papercomputeco/parrot/server/worker"
)

// defaultEmbeddingModel is assumed when a request omits the model field.
const defaultEmbeddingModel = "text-embedding-ada-002"

// handleEmbeddings serves POST /v1/embeddings: normalize the input into a
// batch, wait out the fixed embedding delay, then synthesize one vector per
// input in request order.
func (s *Server) handleEmbeddings(c *fiber.Ctx) error {
	start := time.Now()

	var req oai.EmbeddingRequest
	if len(c.Body()) == 0 || json.Unmarshal(c.Body(), &req) != nil {
		return badRequest(c, "Request body is required")
	}

	texts, err := oai.NormalizeInput(req.Input)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if max := s.cfg.Limits.MaxBatchSize; len(texts) > max {
		return badRequest(c, fmt.Sprintf("input exceeds maximum batch size of %d", max))
	}

	model := req.Model
	if model == "" {
		model = defaultEmbeddingModel
	}
	if _, ok := s.cfg.Model(model); !ok {
		return modelNotFound(c)
	}

	if err := s.sim.Embedding(c.Context()); err != nil {
		// Client went away during the simulated delay.
		return nil
	}

	vectors := s.synthesizer.Batch(texts)
	data := make([]oai.Embedding, len(vectors))
	for i, vec := range vectors {
		data[i] = oai.Embedding{Object: oai.ObjectEmbedding, Embedding: vec, Index: i}
	}
	usage := tokens.Batch(s.estimator, texts)

	s.pool.Enqueue(worker.Sample{
		Endpoint: worker.EndpointEmbeddings,
		Model:    model,
		Usage:    oai.Usage{PromptTokens: usage.PromptTokens, TotalTokens: usage.TotalTokens},
		Duration: time.Since(start),
	})

	return c.JSON(oai.EmbeddingResponse{
		Object: oai.ObjectList,
		Data:   data,
		Model:  model,
		Usage:  usage,
	})
}
