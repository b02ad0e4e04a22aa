package oai

// ChatCompletionChunk is one streamed frame of a completion. Every chunk of
// a stream shares the same ID and created timestamp.
type ChatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
	Usage   *Usage        `json:"usage,omitempty"`
}

// ChunkChoice carries the incremental delta. FinishReason is a pointer so
// intermediate chunks serialize it as null, matching upstream behavior.
type ChunkChoice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

// Delta is the partial message update inside a chunk. The opening chunk
// announces the role, content chunks carry text, and the terminal chunk is
// empty.
type Delta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}
