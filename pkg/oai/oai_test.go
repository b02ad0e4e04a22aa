package oai_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/parrot/pkg/oai"
)

var _ = Describe("LastUserContent", func() {
	It("returns the most recent user turn", func() {
		messages := []oai.Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "first"},
			{Role: "assistant", Content: "reply"},
			{Role: "user", Content: "second"},
		}
		Expect(oai.LastUserContent(messages)).To(Equal("second"))
	})

	It("skips trailing assistant turns", func() {
		messages := []oai.Message{
			{Role: "user", Content: "question"},
			{Role: "assistant", Content: "answer"},
		}
		Expect(oai.LastUserContent(messages)).To(Equal("question"))
	})

	It("returns empty when no user turn exists", func() {
		messages := []oai.Message{
			{Role: "system", Content: "setup"},
		}
		Expect(oai.LastUserContent(messages)).To(BeEmpty())
	})

	It("returns empty for an empty conversation", func() {
		Expect(oai.LastUserContent(nil)).To(BeEmpty())
	})
})

var _ = Describe("NewUsage", func() {
	It("recomputes the total from its parts", func() {
		u := oai.NewUsage(12, 34)
		Expect(u.PromptTokens).To(Equal(12))
		Expect(u.CompletionTokens).To(Equal(34))
		Expect(u.TotalTokens).To(Equal(46))
	})

	It("handles zero parts", func() {
		Expect(oai.NewUsage(0, 0).TotalTokens).To(Equal(0))
	})
})

var _ = Describe("NormalizeInput", func() {
	It("wraps a single string into a batch", func() {
		texts, err := oai.NormalizeInput("hello")
		Expect(err).NotTo(HaveOccurred())
		Expect(texts).To(Equal([]string{"hello"}))
	})

	It("passes through a string slice", func() {
		texts, err := oai.NormalizeInput([]string{"a", "b"})
		Expect(err).NotTo(HaveOccurred())
		Expect(texts).To(Equal([]string{"a", "b"}))
	})

	It("converts a decoded JSON array", func() {
		texts, err := oai.NormalizeInput([]any{"a", "b", "c"})
		Expect(err).NotTo(HaveOccurred())
		Expect(texts).To(Equal([]string{"a", "b", "c"}))
	})

	It("rejects nil input", func() {
		_, err := oai.NormalizeInput(nil)
		Expect(err).To(MatchError(oai.ErrInputRequired))
	})

	It("rejects an empty string", func() {
		_, err := oai.NormalizeInput("")
		Expect(err).To(MatchError(oai.ErrInputRequired))
	})

	It("rejects an empty array", func() {
		_, err := oai.NormalizeInput([]any{})
		Expect(err).To(MatchError(oai.ErrInputRequired))
	})

	It("rejects mixed-type arrays", func() {
		_, err := oai.NormalizeInput([]any{"a", 42})
		Expect(err).To(MatchError(oai.ErrInputType))
	})

	It("rejects numbers", func() {
		_, err := oai.NormalizeInput(3.14)
		Expect(err).To(MatchError(oai.ErrInputType))
	})
})

var _ = Describe("ChatCompletionChunk JSON", func() {
	It("serializes a null finish_reason on intermediate chunks", func() {
		chunk := oai.ChatCompletionChunk{
			ID:      "chatcmpl-abc",
			Object:  oai.ObjectChatCompletionChunk,
			Created: 1700000000,
			Model:   "gpt-3.5-turbo",
			Choices: []oai.ChunkChoice{
				{Index: 0, Delta: oai.Delta{Content: "hi"}},
			},
		}

		raw, err := json.Marshal(chunk)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`"finish_reason":null`))
		Expect(string(raw)).NotTo(ContainSubstring("usage"))
	})

	It("serializes an empty delta on the terminal chunk", func() {
		reason := oai.FinishStop
		chunk := oai.ChatCompletionChunk{
			ID:      "chatcmpl-abc",
			Object:  oai.ObjectChatCompletionChunk,
			Created: 1700000000,
			Model:   "gpt-3.5-turbo",
			Choices: []oai.ChunkChoice{
				{Index: 0, Delta: oai.Delta{}, FinishReason: &reason},
			},
		}

		raw, err := json.Marshal(chunk)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`"delta":{}`))
		Expect(string(raw)).To(ContainSubstring(`"finish_reason":"stop"`))
	})

	It("omits content from the role-announcing delta", func() {
		raw, err := json.Marshal(oai.Delta{Role: "assistant"})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`{"role":"assistant"}`))
	})
})

var _ = Describe("ChatCompletionRequest JSON", func() {
	It("decodes a typical client payload", func() {
		payload := []byte(`{
			"model": "gpt-4",
			"messages": [{"role": "user", "content": "Hello!"}],
			"max_tokens": 50,
			"temperature": 0.1,
			"stream": true
		}`)

		var req oai.ChatCompletionRequest
		Expect(json.Unmarshal(payload, &req)).To(Succeed())
		Expect(req.Model).To(Equal("gpt-4"))
		Expect(req.Messages).To(HaveLen(1))
		Expect(*req.MaxTokens).To(Equal(50))
		Expect(req.Stream).To(BeTrue())
	})
})
