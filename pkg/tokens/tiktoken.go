package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken counts with the cl100k_base BPE, the encoding shared by the
// catalog's chat and embedding models. Construction fetches the encoding
// definition on first use, so this mode is opt-in.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// NewTiktoken loads the cl100k_base encoding.
func NewTiktoken() (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("loading cl100k_base encoding: %w", err)
	}
	return &Tiktoken{enc: enc}, nil
}

func (t *Tiktoken) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}
