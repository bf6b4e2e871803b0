package opsin

import (
	"fmt"
	"strings"
)

// ValidationError reports a request or option that was rejected before any
// process was started. It is always fatal to the call.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SpawnError reports that the interpreter process could not be run at all,
// as opposed to running and exiting with a non-zero status.
type SpawnError struct {
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Program, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// InvocationError is the structured cause carried by a failed Result.
type InvocationError struct {
	// ExitCode is the interpreter's exit status, or -1 when it never ran to
	// completion (spawn failure, signal, cancellation).
	ExitCode int
	// Stderr holds the decoded diagnostic stream, if any was captured.
	Stderr string
	Err    error
}

func (e *InvocationError) Error() string {
	var b strings.Builder
	b.WriteString("opsin invocation failed")
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, " with exit code %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		fmt.Fprintf(&b, " (%s)", firstLine(msg))
	}
	return b.String()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r")
	}
	return s
}
