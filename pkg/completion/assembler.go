// Package completion turns a selected reply into OpenAI-shaped responses,
// either as one assembled object or as a timed stream of chunks.
package completion

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/parrot/pkg/oai"
	"github.com/papercomputeco/parrot/pkg/reply"
	"github.com/papercomputeco/parrot/pkg/tokens"
)

// NewID returns a fresh chat completion identifier. IDs are never reused;
// every request gets its own.
func NewID() string {
	return "chatcmpl-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Options carries the caller-supplied constraints that shape a reply.
type Options struct {
	// MaxTokens caps the completion length in words. Nil means uncapped.
	MaxTokens *int
}

// Assembler produces complete, immutable chat completion replies.
type Assembler struct {
	selector  *reply.Selector
	estimator tokens.Estimator
}

// NewAssembler wires a selector and an estimator.
func NewAssembler(selector *reply.Selector, estimator tokens.Estimator) *Assembler {
	return &Assembler{selector: selector, estimator: estimator}
}

// Assemble selects a reply for the conversation, applies the length cap,
// and wraps the result with usage recomputed on the final text. The finish
// reason is "length" only when the cap actually truncated.
func (a *Assembler) Assemble(model string, messages []oai.Message, opts Options) oai.ChatCompletion {
	text := a.selector.Select(messages)
	finish := oai.FinishStop
	if opts.MaxTokens != nil {
		if capped, truncated := tokens.TruncateWords(text, *opts.MaxTokens); truncated {
			text = capped
			finish = oai.FinishLength
		}
	}

	return oai.ChatCompletion{
		ID:      NewID(),
		Object:  oai.ObjectChatCompletion,
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []oai.Choice{{
			Index:        0,
			Message:      oai.Message{Role: oai.RoleAssistant, Content: text},
			FinishReason: finish,
		}},
		Usage: tokens.Chat(a.estimator, messages, text),
	}
}
