// Package shared provides constants and helpers used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"context"
	"errors"
	"fmt"

	"github.com/go2opsin/go2opsin/internal/config"
	"github.com/go2opsin/go2opsin/internal/opsin"
)

// Command group IDs for organizing help output
const (
	GroupConversion    = "conversion"
	GroupConfiguration = "configuration"
	GroupInfo          = "info"
)

// Exit codes for CLI commands
const (
	ExitSuccess           = 0
	ExitConversionFailed  = 1
	ExitInvalidArguments  = 3
	ExitMissingDependency = 4
	ExitTimeout           = 5
)

// exitError is a custom error type that carries an exit code and, optionally,
// the error that caused it.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

// NewExitError creates a new exit error with the given code. The command has
// already reported the problem, so Execute prints nothing for it.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// WithExitCode attaches an exit code to err; Execute prints err.
func WithExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// Silent reports whether err only carries an exit code and has nothing to print.
func Silent(err error) bool {
	var e *exitError
	return errors.As(err, &e) && e.err == nil
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	var optsErr *opsin.ValidationError
	var cfgErr *config.ValidationError
	if errors.As(err, &optsErr) || errors.As(err, &cfgErr) {
		return ExitInvalidArguments
	}
	var spawnErr *opsin.SpawnError
	if errors.As(err, &spawnErr) {
		return ExitMissingDependency
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}
	return ExitConversionFailed
}
