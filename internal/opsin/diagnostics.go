package opsin

import (
	"fmt"
	"strings"
)

// Diagnostic is one message OPSIN wrote to its diagnostic stream, typically
// explaining why a name could not be interpreted.
type Diagnostic struct {
	Message string `json:"message" yaml:"message"`
}

// Diagnostics is the ordered set of messages from one invocation.
type Diagnostics []Diagnostic

// ParseDiagnostics splits a captured diagnostic stream into one entry per
// non-blank line. A stream holding only whitespace still yields one entry,
// so any output on it is reported.
func ParseDiagnostics(stderr []byte, dec *Decoder) Diagnostics {
	if len(stderr) == 0 {
		return nil
	}
	text := dec.Decode(stderr)
	if strings.TrimSpace(text) == "" {
		return Diagnostics{{Message: fmt.Sprintf("interpreter wrote %d bytes of whitespace to stderr", len(stderr))}}
	}
	var out Diagnostics
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Diagnostic{Message: line})
	}
	return out
}

// Empty reports whether there is nothing to report.
func (d Diagnostics) Empty() bool {
	return len(d) == 0
}

// Aggregate joins every message into a single warning text.
func (d Diagnostics) Aggregate() string {
	if len(d) == 0 {
		return ""
	}
	msgs := make([]string, len(d))
	for i, m := range d {
		msgs[i] = m.Message
	}
	return strings.Join(msgs, "\n")
}
