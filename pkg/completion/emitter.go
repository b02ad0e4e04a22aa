package completion

import (
	"context"

	"github.com/papercomputeco/parrot/pkg/latency"
	"github.com/papercomputeco/parrot/pkg/oai"
)

// EmitterConfig shapes how a reply is cut into chunks.
type EmitterConfig struct {
	// Mode is ModeCharacter or ModeWord.
	Mode string
	// Window is the rune count per chunk in character mode.
	Window int
	// IncludeUsage attaches usage to the terminal chunk.
	IncludeUsage bool
}

// Emitter delivers an assembled completion as an ordered chunk sequence:
// one role-announcing delta, one content delta per fragment, then a single
// terminal chunk carrying the finish reason. The consumer callback pulls
// each chunk; after the terminal chunk the emitter returns and nothing
// follows.
type Emitter struct {
	cfg EmitterConfig
	sim *latency.Simulator
}

// NewEmitter builds an Emitter that paces fragments with the simulator's
// chunk delay.
func NewEmitter(cfg EmitterConfig, sim *latency.Simulator) *Emitter {
	return &Emitter{cfg: cfg, sim: sim}
}

// Stream emits the completion through emit. It stops at the next chunk
// boundary when ctx is canceled or emit returns an error, and emits nothing
// further after the terminal chunk. A nil return means the full sequence
// was delivered and the transport should append its end-of-stream sentinel.
func (e *Emitter) Stream(ctx context.Context, c oai.ChatCompletion, emit func(oai.ChatCompletionChunk) error) error {
	choice := c.Choices[0]

	if err := emit(e.chunk(c, oai.Delta{Role: oai.RoleAssistant}, nil, nil)); err != nil {
		return err
	}

	for _, frag := range Fragments(choice.Message.Content, e.cfg.Mode, e.cfg.Window) {
		if err := e.sim.Chunk(ctx); err != nil {
			return err
		}
		if err := emit(e.chunk(c, oai.Delta{Content: frag}, nil, nil)); err != nil {
			return err
		}
	}

	finish := choice.FinishReason
	var usage *oai.Usage
	if e.cfg.IncludeUsage {
		u := c.Usage
		usage = &u
	}
	return emit(e.chunk(c, oai.Delta{}, &finish, usage))
}

func (e *Emitter) chunk(c oai.ChatCompletion, delta oai.Delta, finish *string, usage *oai.Usage) oai.ChatCompletionChunk {
	return oai.ChatCompletionChunk{
		ID:      c.ID,
		Object:  oai.ObjectChatCompletionChunk,
		Created: c.Created,
		Model:   c.Model,
		Choices: []oai.ChunkChoice{{Index: 0, Delta: delta, FinishReason: finish}},
		Usage:   usage,
	}
}
