package server

import (
	"encoding/json"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/sse"
	"github.com/papercomputeco/parrot/server/worker"
)

// streamCompletion delivers an assembled completion as SSE chunks followed
// by the [DONE] sentinel.
//
// fasthttp recycles its RequestCtx once the handler returns, while the chunk
// producer keeps running in its own goroutine. The producer therefore writes
// through an io.Pipe and watches the server's lifecycle context instead of
// the request's: a client disconnect surfaces as a pipe write error at the
// next chunk boundary, a shutdown as a canceled context.
func (s *Server) streamCompletion(c *fiber.Ctx, comp oai.ChatCompletion, start time.Time) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	pr, pw := io.Pipe()

	s.streams.Add(1)
	go func() {
		defer s.streams.Done()
		defer pw.Close()

		err := s.emitter.Stream(s.ctx, comp, func(chunk oai.ChatCompletionChunk) error {
			data, err := json.Marshal(chunk)
			if err != nil {
				return err
			}
			return sse.WriteData(pw, string(data))
		})
		if err != nil {
			s.logger.Debug("stream interrupted", "id", comp.ID, "error", err)
			return
		}

		if err := sse.WriteDone(pw); err != nil {
			return
		}

		s.pool.Enqueue(worker.Sample{
			Endpoint: worker.EndpointChatCompletions,
			Model:    comp.Model,
			Usage:    comp.Usage,
			Duration: time.Since(start),
		})
	}()

	// Unknown size (-1) selects chunked transfer encoding, so each frame
	// reaches the client as soon as the pipe hands it over.
	c.Context().Response.SetBodyStream(pr, -1)

	return nil
}
