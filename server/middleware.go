package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/oai"
)

const bearerPrefix = "Bearer "

// requireAuth guards the /v1 group. An empty configured key disables the
// check entirely. A header without the Bearer scheme and a wrong key produce
// distinct messages so clients can tell the two failures apart.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	key := s.cfg.Auth.APIKey
	if key == "" {
		return c.Next()
	}

	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authz, bearerPrefix) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(oai.NewError(oai.ErrTypeUnauthorized, "Missing or invalid Authorization header"))
	}
	if strings.TrimPrefix(authz, bearerPrefix) != key {
		return c.Status(fiber.StatusUnauthorized).
			JSON(oai.NewError(oai.ErrTypeUnauthorized, "Invalid API key"))
	}

	return c.Next()
}

// accessLog logs one line per request. Errors from the chain are rendered
// here through the app error handler so the logged status is the one the
// client saw; returning nil keeps fiber from rendering the error twice.
func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()

	chainErr := c.Next()
	if chainErr != nil {
		if err := errorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	s.logger.Info("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
	)

	return nil
}
