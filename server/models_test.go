package server

import (
	"encoding/json"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/gofiber/fiber/v2"

	"github.com/papercomputeco/parrot/pkg/config"
	"github.com/papercomputeco/parrot/pkg/oai"
)

var _ = Describe("GET /v1/models", func() {
	It("lists the catalog in configured order", func() {
		s := newTestServer()

		resp, err := s.app.Test(authed(http.MethodGet, "/v1/models", nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		raw, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())

		var list oai.ModelList
		Expect(json.Unmarshal(raw, &list)).To(Succeed())
		Expect(list.Object).To(Equal(oai.ObjectList))
		Expect(list.Data).To(HaveLen(5))

		ids := make([]string, len(list.Data))
		for i, m := range list.Data {
			ids[i] = m.ID
			Expect(m.Object).To(Equal(oai.ObjectModel))
			Expect(m.OwnedBy).To(Equal("openai"))
			Expect(m.Created).To(BeNumerically(">", 0))
		}
		Expect(ids).To(Equal([]string{
			"gpt-4",
			"gpt-3.5-turbo",
			"text-embedding-ada-002",
			"gpt-4-turbo",
			"gpt-4o",
		}))
	})

	It("serves a custom catalog", func() {
		s := newTestServer(func(cfg *config.Config) {
			cfg.Models = []config.ModelEntry{
				{ID: "house-model", Created: 1700000000, OwnedBy: "acme"},
			}
		})

		resp, err := s.app.Test(authed(http.MethodGet, "/v1/models", nil))
		Expect(err).NotTo(HaveOccurred())

		raw, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())

		var list oai.ModelList
		Expect(json.Unmarshal(raw, &list)).To(Succeed())
		Expect(list.Data).To(HaveLen(1))
		Expect(list.Data[0].ID).To(Equal("house-model"))
		Expect(list.Data[0].OwnedBy).To(Equal("acme"))
	})
})

var _ = Describe("GET /v1/models/:id", func() {
	var s *Server

	BeforeEach(func() {
		s = newTestServer()
	})

	It("returns a single catalog entry", func() {
		resp, err := s.app.Test(authed(http.MethodGet, "/v1/models/gpt-4", nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		raw, err := io.ReadAll(resp.Body)
		Expect(err).NotTo(HaveOccurred())

		var m oai.Model
		Expect(json.Unmarshal(raw, &m)).To(Succeed())
		Expect(m.ID).To(Equal("gpt-4"))
		Expect(m.Object).To(Equal(oai.ObjectModel))
		Expect(m.Created).To(Equal(int64(1677610602)))
		Expect(m.OwnedBy).To(Equal("openai"))
	})

	It("returns the 404 envelope for an unknown id", func() {
		resp, err := s.app.Test(authed(http.MethodGet, "/v1/models/does-not-exist", nil))
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))

		envelope := decodeError(resp)
		Expect(envelope.Error.Message).To(Equal("Model not found"))
		Expect(envelope.Error.Type).To(Equal(oai.ErrTypeNotFound))
	})
})
