package completion_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/parrot/pkg/completion"
	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/reply"
	"github.com/papercomputeco/parrot/pkg/rng"
	"github.com/papercomputeco/parrot/pkg/tokens"
)

func intPtr(v int) *int { return &v }

var _ = Describe("NewID", func() {
	It("uses the chatcmpl prefix", func() {
		Expect(completion.NewID()).To(HavePrefix("chatcmpl-"))
	})

	It("never repeats", func() {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			id := completion.NewID()
			Expect(seen[id]).To(BeFalse())
			seen[id] = true
		}
	})
})

var _ = Describe("Assembler", func() {
	var a *completion.Assembler

	BeforeEach(func() {
		selector := reply.NewSelector(reply.DefaultLibrary(), rng.Seeded(42))
		a = completion.NewAssembler(selector, tokens.WordCount{})
	})

	It("assembles a greeting into a stop-finished reply", func() {
		conv := []oai.Message{{Role: "user", Content: "Hello!"}}
		c := a.Assemble("gpt-3.5-turbo", conv, completion.Options{})

		Expect(c.Object).To(Equal("chat.completion"))
		Expect(c.Model).To(Equal("gpt-3.5-turbo"))
		Expect(c.ID).To(HavePrefix("chatcmpl-"))
		Expect(c.Created).To(BeNumerically(">", 0))
		Expect(c.Choices).To(HaveLen(1))
		Expect(c.Choices[0].Index).To(Equal(0))
		Expect(c.Choices[0].Message.Role).To(Equal("assistant"))
		Expect(c.Choices[0].Message.Content).NotTo(BeEmpty())
		Expect(c.Choices[0].FinishReason).To(Equal("stop"))
		Expect(c.Usage.TotalTokens).To(BeNumerically(">=", 1))
	})

	It("always recomputes the usage total", func() {
		conv := []oai.Message{
			{Role: "system", Content: "short system prompt"},
			{Role: "user", Content: "tell me a thing"},
		}
		c := a.Assemble("gpt-4", conv, completion.Options{})
		Expect(c.Usage.TotalTokens).To(Equal(c.Usage.PromptTokens + c.Usage.CompletionTokens))
	})

	Context("with a max_tokens cap", func() {
		It("truncates and reports length", func() {
			conv := []oai.Message{{Role: "user", Content: "Hello!"}}
			c := a.Assemble("gpt-4", conv, completion.Options{MaxTokens: intPtr(3)})

			Expect(c.Choices[0].FinishReason).To(Equal("length"))
			Expect(strings.Fields(c.Choices[0].Message.Content)).To(HaveLen(3))
			Expect(c.Usage.CompletionTokens).To(Equal(3))
		})

		It("recomputes completion tokens on the truncated text", func() {
			conv := []oai.Message{{Role: "user", Content: "what do you think"}}
			c := a.Assemble("gpt-4", conv, completion.Options{MaxTokens: intPtr(2)})

			Expect(c.Usage.CompletionTokens).To(Equal(2))
			Expect(c.Usage.TotalTokens).To(Equal(c.Usage.PromptTokens + 2))
		})

		It("leaves replies under the cap alone", func() {
			conv := []oai.Message{{Role: "user", Content: "Hello!"}}
			c := a.Assemble("gpt-4", conv, completion.Options{MaxTokens: intPtr(10000)})

			Expect(c.Choices[0].FinishReason).To(Equal("stop"))
		})
	})

	It("routes coding questions to the coding pool", func() {
		lib := reply.DefaultLibrary()
		selector := reply.NewSelector(lib, rng.Seeded(5))
		coding := completion.NewAssembler(selector, tokens.WordCount{})

		conv := []oai.Message{{Role: "user", Content: "Can you help me debug this code?"}}
		c := coding.Assemble("gpt-4", conv, completion.Options{})
		Expect(lib.Pool(reply.CategoryCode)).To(ContainElement(c.Choices[0].Message.Content))
	})
})
