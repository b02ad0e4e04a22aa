package oai

import "errors"

// Embedding is one synthesized vector in an embeddings response. Index is
// the position of the originating input in the request batch.
type Embedding struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// EmbeddingResponse is the envelope for POST /v1/embeddings.
type EmbeddingResponse struct {
	Object string         `json:"object"`
	Data   []Embedding    `json:"data"`
	Model  string         `json:"model"`
	Usage  EmbeddingUsage `json:"usage"`
}

// EmbeddingUsage has no completion component; prompt and total are equal.
type EmbeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Embedding input validation errors, surfaced to callers as 400s.
var (
	ErrInputRequired = errors.New("input is required")
	ErrInputType     = errors.New("input must be string or array of strings")
)

// NormalizeInput coerces the request's input field into a batch of strings.
// A single string becomes a one-element batch. JSON decoding hands arrays
// over as []any, so both that and []string are accepted.
func NormalizeInput(input any) ([]string, error) {
	switch v := input.(type) {
	case nil:
		return nil, ErrInputRequired
	case string:
		if v == "" {
			return nil, ErrInputRequired
		}
		return []string{v}, nil
	case []string:
		if len(v) == 0 {
			return nil, ErrInputRequired
		}
		return v, nil
	case []any:
		if len(v) == 0 {
			return nil, ErrInputRequired
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, ErrInputType
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, ErrInputType
	}
}
