// Package worker provides an asynchronous accounting pool that aggregates
// per-request usage samples.
//
// The pool decouples accounting from the server's HTTP hot path: handlers
// enqueue a Sample after responding and background workers fold it into
// running totals, which the health endpoint reports and serve logs at
// shutdown.
package worker

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/papercomputeco/parrot/pkg/logger"
	"github.com/papercomputeco/parrot/pkg/oai"
)

var (
	defaultNumWorkers uint = 2
	defaultQueueSize  uint = 256
)

// Endpoint tags for samples, also used as keys in Totals.ByEndpoint.
const (
	EndpointChatCompletions = "chat_completions"
	EndpointEmbeddings      = "embeddings"
)

// Sample is one request's worth of accounting data.
type Sample struct {
	// Endpoint names the route that produced the sample.
	Endpoint string

	// Model is the requested model id.
	Model string

	// Usage is the fabricated token usage returned to the client.
	Usage oai.Usage

	// Duration is the handler time including simulated latency.
	Duration time.Duration
}

// Config is the configuration options for the accounting pool.
type Config struct {
	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered sample channel (defaults to 256).
	QueueSize uint

	// Logger receives worker lifecycle and drop events. Nil means no logging.
	Logger *slog.Logger
}

// Totals is a point-in-time snapshot of everything the pool has aggregated.
type Totals struct {
	Requests         int64
	ByEndpoint       map[string]int64
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	Dropped          int64
}

// Pool aggregates samples asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Sample
	wg     sync.WaitGroup
	logger *slog.Logger

	mu         sync.Mutex
	requests   int64
	byEndpoint map[string]int64
	prompt     int64
	completion int64
	total      int64
	dropped    int64
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	if c.Logger == nil {
		c.Logger = logger.Nop()
	}

	p := &Pool{
		config:     c,
		queue:      make(chan Sample, c.QueueSize),
		logger:     c.Logger,
		byEndpoint: make(map[string]int64),
	}

	p.wg.Add(int(c.NumWorkers))
	for i := uint(0); i < c.NumWorkers; i++ {
		go p.worker(i)
	}

	return p, nil
}

// Enqueue submits a sample for aggregation. Returns true if enqueued, false
// if the queue is full, in which case the sample is dropped so the caller
// never blocks.
func (p *Pool) Enqueue(s Sample) bool {
	select {
	case p.queue <- s:
		return true
	default:
		p.mu.Lock()
		p.dropped++
		p.mu.Unlock()
		p.logger.Debug("accounting queue full, sample dropped",
			"endpoint", s.Endpoint,
			"model", s.Model,
		)
		return false
	}
}

// Totals returns a snapshot of the aggregated counters. Samples still in the
// queue are not included; call Close first for an exact final count.
func (p *Pool) Totals() Totals {
	p.mu.Lock()
	defer p.mu.Unlock()

	byEndpoint := make(map[string]int64, len(p.byEndpoint))
	for k, v := range p.byEndpoint {
		byEndpoint[k] = v
	}

	return Totals{
		Requests:         p.requests,
		ByEndpoint:       byEndpoint,
		PromptTokens:     p.prompt,
		CompletionTokens: p.completion,
		TotalTokens:      p.total,
		Dropped:          p.dropped,
	}
}

// Close signals workers to stop and waits for queued samples to drain.
// Call this during graceful shutdown after the HTTP server has stopped.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("accounting worker started", "worker_id", id)

	for s := range p.queue {
		p.record(s)
	}

	p.logger.Debug("accounting worker stopped", "worker_id", id)
}

func (p *Pool) record(s Sample) {
	p.mu.Lock()
	p.requests++
	p.byEndpoint[s.Endpoint]++
	p.prompt += int64(s.Usage.PromptTokens)
	p.completion += int64(s.Usage.CompletionTokens)
	p.total += int64(s.Usage.TotalTokens)
	p.mu.Unlock()

	p.logger.Debug("sample recorded",
		"endpoint", s.Endpoint,
		"model", s.Model,
		"total_tokens", s.Usage.TotalTokens,
		"duration", s.Duration,
	)
}
