// Package embedding fabricates fixed-length embedding vectors. Values are
// bounded to [-1, 1] and the dimensionality never varies with the input, so
// downstream similarity plumbing can consume them like real ones.
package embedding

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"math/rand"

	"github.com/papercomputeco/parrot/pkg/rng"
)

// DefaultDimensions matches text-embedding-ada-002.
const DefaultDimensions = 1536

// Synthesizer produces fake embedding vectors. The zero-value deterministic
// flag means fresh random values per call; deterministic mode hashes the
// input so the same text always maps to the same unit-length vector.
type Synthesizer struct {
	dims          int
	deterministic bool
	rand          rng.Source
}

// New builds a Synthesizer. Non-positive dims falls back to
// DefaultDimensions.
func New(dims int, deterministic bool, src rng.Source) *Synthesizer {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Synthesizer{dims: dims, deterministic: deterministic, rand: src}
}

// Dimensions reports the fixed output length.
func (s *Synthesizer) Dimensions() int {
	return s.dims
}

// Embed returns a vector of exactly Dimensions values, each in [-1, 1],
// for any input including the empty string.
func (s *Synthesizer) Embed(text string) []float32 {
	if s.deterministic {
		return s.hashed(text)
	}
	vec := make([]float32, s.dims)
	for i := range vec {
		vec[i] = float32(s.rand.Float64()*2 - 1)
	}
	return vec
}

// Batch embeds each input in order; output element i corresponds to input i.
func (s *Synthesizer) Batch(texts []string) [][]float32 {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = s.Embed(text)
	}
	return out
}

// hashed derives a per-text generator from a SHA-256 of the input and
// normalizes the draw to unit length. Normalization keeps every component
// within [-1, 1]. The generator is local to the call, so concurrent
// requests share nothing.
func (s *Synthesizer) hashed(text string) []float32 {
	sum := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	r := rand.New(rand.NewSource(seed))

	vec := make([]float32, s.dims)
	var norm float64
	for i := range vec {
		v := r.Float64()*2 - 1
		vec[i] = float32(v)
		norm += v * v
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range vec {
			vec[i] = float32(float64(vec[i]) * inv)
		}
	}
	return vec
}
