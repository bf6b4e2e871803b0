// Package progress provides the spinner and completion marks shown on stderr
// while an OPSIN conversion runs. It detects terminal capabilities and falls
// back to plain lines when stderr is not a terminal.
package progress

import "errors"

// TaskStatus represents the execution state of a conversion task
type TaskStatus int

const (
	// TaskPending indicates the task has not started yet
	TaskPending TaskStatus = iota
	// TaskRunning indicates the interpreter is currently running
	TaskRunning
	// TaskSucceeded indicates the task finished successfully
	TaskSucceeded
	// TaskFailed indicates the task failed with an error
	TaskFailed
)

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskRunning:
		return "running"
	case TaskSucceeded:
		return "succeeded"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TaskInfo describes one conversion for progress display
type TaskInfo struct {
	// Names is the number of chemical names in the request
	Names int
	// Format is the requested output format (e.g., "SMILES")
	Format string
	// Status is the current execution status
	Status TaskStatus
}

// Validate checks that all TaskInfo fields meet validation requirements
func (t TaskInfo) Validate() error {
	if t.Names <= 0 {
		return errors.New("task must convert at least one name")
	}
	if t.Format == "" {
		return errors.New("task format cannot be empty")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the progress stream is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
