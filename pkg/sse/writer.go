package sse

import (
	"fmt"
	"io"
	"strings"
)

// Done is the end-of-stream sentinel payload. It is written as a data frame
// but is not JSON, so no parsed chunk can collide with it.
const Done = "[DONE]"

// WriteEvent frames ev onto w: optional event and id lines, one data line
// per newline-separated segment, and the terminating blank line. WriteEvent
// and Reader are inverses for any event a writer can produce.
func WriteEvent(w io.Writer, ev Event) error {
	if ev.Type != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", ev.Type); err != nil {
			return err
		}
	}
	if ev.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", ev.ID); err != nil {
			return err
		}
	}
	for _, line := range strings.Split(ev.Data, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteData frames a default-typed event carrying data.
func WriteData(w io.Writer, data string) error {
	return WriteEvent(w, Event{Data: data})
}

// WriteDone frames the end-of-stream sentinel.
func WriteDone(w io.Writer) error {
	return WriteData(w, Done)
}
