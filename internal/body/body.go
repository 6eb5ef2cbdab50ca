// Package body decodes captured payload bytes for the pipeline stages.
//
// Payloads may arrive framed as server-sent-event data lines (an optional
// "data: " prefix) and may or may not be JSON. Decoding never fails: when a
// payload is not valid JSON the raw text is used as-is.
package body

import (
	"strings"

	"github.com/ohler55/ojg/oj"
)

// streamPrefix is the SSE data-line framing some upstreams wrap payloads in.
const streamPrefix = "data: "

// Done is the streaming terminator marker some upstreams send as the final
// data line. It is never a real payload.
const Done = "[DONE]"

// Text returns b as text with any stream framing removed: a leading
// "data: " prefix and the trailing newlines that terminate an SSE event.
func Text(b []byte) string {
	s := strings.TrimPrefix(string(b), streamPrefix)
	return strings.TrimRight(s, "\r\n")
}

// Decode strips stream framing and parses the payload as JSON, falling back
// to the raw text when parsing fails. The zero payload decodes to "".
func Decode(b []byte) any {
	text := Text(b)
	if text == "" {
		return text
	}
	v, err := oj.ParseString(text)
	if err != nil {
		return text
	}
	return v
}
