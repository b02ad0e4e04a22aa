// Package tokens estimates token counts without running a real model. The
// default heuristics only need to be stable, monotonic in input length, and
// plausible enough for clients that display usage numbers.
package tokens

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/papercomputeco/parrot/pkg/oai"
)

// Estimator counts tokens for a piece of text. Count must be stable for a
// given input and never return zero for non-empty text.
type Estimator interface {
	Count(text string) int
}

// Estimator modes selectable via configuration.
const (
	ModeWords    = "words"
	ModeChars    = "chars"
	ModeTiktoken = "tiktoken"
)

// ForMode builds the estimator named by mode.
func ForMode(mode string) (Estimator, error) {
	switch mode {
	case ModeWords:
		return WordCount{}, nil
	case ModeChars:
		return CharCount{}, nil
	case ModeTiktoken:
		return NewTiktoken()
	default:
		return nil, fmt.Errorf("unknown token estimator %q", mode)
	}
}

// WordCount treats each whitespace-delimited word as one token.
type WordCount struct{}

func (WordCount) Count(text string) int {
	n := len(strings.Fields(text))
	if n == 0 && text != "" {
		return 1
	}
	return n
}

// CharCount approximates one token per four characters of English text.
type CharCount struct{}

func (CharCount) Count(text string) int {
	n := len(text) / 4
	if n == 0 && text != "" {
		return 1
	}
	return n
}

// Chat derives usage for a completion: prompt tokens summed across every
// message's content, completion tokens from the reply text, total always
// recomputed.
func Chat(e Estimator, messages []oai.Message, completion string) oai.Usage {
	prompt := 0
	for _, m := range messages {
		prompt += e.Count(m.Content)
	}
	return oai.NewUsage(prompt, e.Count(completion))
}

// Batch derives usage for an embeddings request. There is no completion
// side, so prompt and total are the same sum.
func Batch(e Estimator, inputs []string) oai.EmbeddingUsage {
	total := 0
	for _, text := range inputs {
		total += e.Count(text)
	}
	return oai.EmbeddingUsage{PromptTokens: total, TotalTokens: total}
}

// TruncateWords cuts text at the end of its nth word, preserving the
// original spacing before the cut. The second return reports whether
// anything was removed.
func TruncateWords(text string, n int) (string, bool) {
	if n <= 0 {
		return "", text != ""
	}

	words := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			words++
			if words > n {
				return strings.TrimRightFunc(text[:i], unicode.IsSpace), true
			}
			inWord = true
		}
	}
	return text, false
}
