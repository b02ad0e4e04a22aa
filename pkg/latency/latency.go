// Package latency injects artificial delays so the server paces like a real
// inference backend. Delays suspend only the calling request; cancellation
// is honored mid-sleep.
package latency

import (
	"context"
	"time"

	"github.com/papercomputeco/parrot/pkg/rng"
)

// Timing holds the delay profile. Zero values disable the corresponding
// delay, which is how the test profile runs.
type Timing struct {
	// CompletionMin and CompletionMax bound the uniform draw for a chat
	// completion.
	CompletionMin time.Duration
	CompletionMax time.Duration
	// Embedding is the fixed delay per embeddings request.
	Embedding time.Duration
	// Chunk is the fixed delay between streamed chunks.
	Chunk time.Duration
	// Multipliers scales the completion delay per model, mimicking slower
	// large models.
	Multipliers map[string]float64
}

// Simulator draws and applies delays.
type Simulator struct {
	timing Timing
	rand   rng.Source
}

// New builds a Simulator for the given profile.
func New(timing Timing, src rng.Source) *Simulator {
	return &Simulator{timing: timing, rand: src}
}

// Completion sleeps for a uniform draw between the configured bounds,
// scaled by the model's multiplier when one is configured.
func (s *Simulator) Completion(ctx context.Context, model string) error {
	return sleep(ctx, s.completionDelay(model))
}

// Embedding sleeps for the fixed embedding delay.
func (s *Simulator) Embedding(ctx context.Context) error {
	return sleep(ctx, s.timing.Embedding)
}

// Chunk sleeps for the fixed inter-chunk delay.
func (s *Simulator) Chunk(ctx context.Context) error {
	return sleep(ctx, s.timing.Chunk)
}

func (s *Simulator) completionDelay(model string) time.Duration {
	lo, hi := s.timing.CompletionMin, s.timing.CompletionMax
	if hi < lo {
		hi = lo
	}
	d := lo
	if hi > lo {
		d = lo + time.Duration(s.rand.Float64()*float64(hi-lo))
	}
	if m, ok := s.timing.Multipliers[model]; ok && m > 0 {
		d = time.Duration(float64(d) * m)
	}
	return d
}

// sleep waits for d or until ctx is done, whichever comes first. A
// non-positive d does not sleep but still observes an already-canceled
// context.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
