package completion

import "unicode"

// Stream fragmentation modes.
const (
	ModeCharacter = "character"
	ModeWord      = "word"
)

// ValidMode reports whether m names a fragmentation mode.
func ValidMode(m string) bool {
	return m == ModeCharacter || m == ModeWord
}

// Fragments splits text into streamable pieces that concatenate back to
// exactly the input. Character mode emits fixed-size rune windows; word mode
// emits one word per fragment with its surrounding whitespace preserved.
// Callers validate the mode; anything unrecognized splits like character.
func Fragments(text, mode string, window int) []string {
	if text == "" {
		return nil
	}
	if mode == ModeWord {
		return splitWords(text)
	}
	return splitRunes(text, window)
}

func splitRunes(text string, window int) []string {
	if window <= 0 {
		window = 1
	}
	runes := []rune(text)
	frags := make([]string, 0, (len(runes)+window-1)/window)
	for i := 0; i < len(runes); i += window {
		end := i + window
		if end > len(runes) {
			end = len(runes)
		}
		frags = append(frags, string(runes[i:end]))
	}
	return frags
}

// splitWords cuts before each word start after the first, so leading and
// inter-word whitespace rides along with the preceding fragment.
func splitWords(text string) []string {
	var frags []string
	start := 0
	inWord := false
	seenWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord && seenWord {
			frags = append(frags, text[start:i])
			start = i
		}
		inWord = true
		seenWord = true
	}
	if start < len(text) {
		frags = append(frags, text[start:])
	}
	return frags
}
