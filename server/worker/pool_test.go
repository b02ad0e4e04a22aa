package worker

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/parrot/pkg/logger"
	"github.com/papercomputeco/parrot/pkg/oai"
)

// newTestPool creates an accounting pool with defaults. Callers should
// p.Close() to drain enqueued samples before asserting totals.
func newTestPool() *Pool {
	p, err := NewPool(&Config{Logger: logger.Nop()})
	Expect(err).NotTo(HaveOccurred())
	return p
}

var _ = Describe("Accounting Pool", func() {
	Describe("Enqueue", func() {
		It("returns true when the queue has capacity", func() {
			p := newTestPool()
			ok := p.Enqueue(Sample{
				Endpoint: EndpointChatCompletions,
				Model:    "gpt-4",
				Usage:    oai.NewUsage(10, 5),
			})
			Expect(ok).To(BeTrue())
			p.Close()
		})

		It("drops without blocking when the queue is full", func() {
			// Build a pool without workers so the queue cannot drain.
			p := &Pool{
				config:     &Config{},
				queue:      make(chan Sample, 1),
				logger:     logger.Nop(),
				byEndpoint: make(map[string]int64),
			}

			Expect(p.Enqueue(Sample{Endpoint: EndpointEmbeddings})).To(BeTrue())
			Expect(p.Enqueue(Sample{Endpoint: EndpointEmbeddings})).To(BeFalse())
			Expect(p.Totals().Dropped).To(Equal(int64(1)))
		})
	})

	Describe("Totals", func() {
		It("reflects every enqueued sample after Close", func() {
			p := newTestPool()

			p.Enqueue(Sample{
				Endpoint: EndpointChatCompletions,
				Model:    "gpt-4",
				Usage:    oai.NewUsage(10, 5),
				Duration: 20 * time.Millisecond,
			})
			p.Enqueue(Sample{
				Endpoint: EndpointChatCompletions,
				Model:    "gpt-3.5-turbo",
				Usage:    oai.NewUsage(3, 7),
			})
			p.Enqueue(Sample{
				Endpoint: EndpointEmbeddings,
				Model:    "text-embedding-ada-002",
				Usage:    oai.Usage{PromptTokens: 8, TotalTokens: 8},
			})
			p.Close()

			totals := p.Totals()
			Expect(totals.Requests).To(Equal(int64(3)))
			Expect(totals.ByEndpoint).To(HaveKeyWithValue(EndpointChatCompletions, int64(2)))
			Expect(totals.ByEndpoint).To(HaveKeyWithValue(EndpointEmbeddings, int64(1)))
			Expect(totals.PromptTokens).To(Equal(int64(21)))
			Expect(totals.CompletionTokens).To(Equal(int64(12)))
			Expect(totals.TotalTokens).To(Equal(int64(33)))
			Expect(totals.Dropped).To(Equal(int64(0)))
		})

		It("starts from zero", func() {
			p := newTestPool()
			defer p.Close()

			totals := p.Totals()
			Expect(totals.Requests).To(Equal(int64(0)))
			Expect(totals.ByEndpoint).To(BeEmpty())
		})

		It("returns an independent copy of the endpoint map", func() {
			p := newTestPool()
			p.Enqueue(Sample{Endpoint: EndpointChatCompletions})
			p.Close()

			first := p.Totals()
			first.ByEndpoint["mutated"] = 99
			Expect(p.Totals().ByEndpoint).NotTo(HaveKey("mutated"))
		})
	})

	Describe("NewPool", func() {
		It("applies worker and queue defaults", func() {
			p, err := NewPool(&Config{})
			Expect(err).NotTo(HaveOccurred())
			Expect(cap(p.queue)).To(Equal(int(defaultQueueSize)))
			p.Close()
		})
	})
})
