package oai

// ChatCompletionRequest is the request body for POST /v1/chat/completions.
// Unrecognized tuning knobs are accepted and ignored so real client payloads
// parse cleanly.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
	N           *int      `json:"n,omitempty"`
	Stop        any       `json:"stop,omitempty"` // string or []string
	User        string    `json:"user,omitempty"`
}

// EmbeddingRequest is the request body for POST /v1/embeddings. Input is
// either a single string or an array of strings.
type EmbeddingRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
	User  string `json:"user,omitempty"`
}
