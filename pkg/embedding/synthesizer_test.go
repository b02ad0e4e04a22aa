package embedding_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/parrot/pkg/embedding"
	"github.com/papercomputeco/parrot/pkg/rng"
)

func expectBounded(vec []float32) {
	GinkgoHelper()
	for _, v := range vec {
		Expect(v).To(BeNumerically(">=", -1.0))
		Expect(v).To(BeNumerically("<=", 1.0))
	}
}

var _ = Describe("Synthesizer", func() {
	var s *embedding.Synthesizer

	BeforeEach(func() {
		s = embedding.New(0, false, rng.Seeded(42))
	})

	Describe("Embed", func() {
		It("returns exactly 1536 values by default", func() {
			Expect(s.Embed("some text")).To(HaveLen(1536))
		})

		It("holds the length invariant for the empty string", func() {
			Expect(s.Embed("")).To(HaveLen(1536))
		})

		It("holds the length invariant for long input", func() {
			long := make([]byte, 100000)
			for i := range long {
				long[i] = 'a'
			}
			Expect(s.Embed(string(long))).To(HaveLen(1536))
		})

		It("keeps every value within [-1, 1]", func() {
			expectBounded(s.Embed("bounded"))
			expectBounded(s.Embed(""))
		})

		It("honors a custom dimensionality", func() {
			small := embedding.New(8, false, rng.Seeded(1))
			Expect(small.Embed("x")).To(HaveLen(8))
			Expect(small.Dimensions()).To(Equal(8))
		})
	})

	Describe("Batch", func() {
		It("preserves order and count", func() {
			out := s.Batch([]string{"a", "b", "c"})
			Expect(out).To(HaveLen(3))
			for _, vec := range out {
				Expect(vec).To(HaveLen(1536))
			}
		})

		It("returns an empty batch for empty input", func() {
			Expect(s.Batch(nil)).To(BeEmpty())
		})
	})

	Describe("deterministic mode", func() {
		var d *embedding.Synthesizer

		BeforeEach(func() {
			d = embedding.New(0, true, rng.System())
		})

		It("maps the same text to the same vector", func() {
			Expect(d.Embed("stable text")).To(Equal(d.Embed("stable text")))
		})

		It("maps different texts to different vectors", func() {
			Expect(d.Embed("one")).NotTo(Equal(d.Embed("two")))
		})

		It("produces unit-length vectors", func() {
			var norm float64
			for _, v := range d.Embed("normalize me") {
				norm += float64(v) * float64(v)
			}
			Expect(math.Sqrt(norm)).To(BeNumerically("~", 1.0, 1e-3))
		})

		It("stays within bounds", func() {
			expectBounded(d.Embed("still bounded"))
		})
	})
})
