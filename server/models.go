package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/oai"
)

// handleListModels serves GET /v1/models from the configured catalog,
// preserving catalog order.
func (s *Server) handleListModels(c *fiber.Ctx) error {
	data := make([]oai.Model, len(s.cfg.Models))
	for i, m := range s.cfg.Models {
		data[i] = oai.Model{ID: m.ID, Object: oai.ObjectModel, Created: m.Created, OwnedBy: m.OwnedBy}
	}
	return c.JSON(oai.ModelList{Object: oai.ObjectList, Data: data})
}

// handleGetModel serves GET /v1/models/:id.
func (s *Server) handleGetModel(c *fiber.Ctx) error {
	entry, ok := s.cfg.Model(c.Params("id"))
	if !ok {
		return modelNotFound(c)
	}
	return c.JSON(oai.Model{ID: entry.ID, Object: oai.ObjectModel, Created: entry.Created, OwnedBy: entry.OwnedBy})
}
