package opsin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Invocation is the raw outcome of one interpreter run.
type Invocation struct {
	// ExitCode is the process exit status; -1 when it was terminated by a signal.
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Success reports whether the process exited with status zero.
func (i *Invocation) Success() bool {
	return i != nil && i.ExitCode == 0
}

// Invoker runs one interpreter process to completion.
//
// Implementations return a *SpawnError when the process could not be
// started, and a nil error with a non-zero ExitCode when it ran and failed.
type Invoker interface {
	Invoke(ctx context.Context, program string, args []string) (*Invocation, error)
}

// pipeDrainDelay bounds how long Invoke waits for output pipes after the
// child exits; a grandchild that inherited them would otherwise hold Wait open.
const pipeDrainDelay = 2 * time.Second

// ExecInvoker runs the interpreter with os/exec. The child gets its own
// process group so a timeout also kills anything it spawned.
type ExecInvoker struct {
	// Timeout bounds each run. Zero means no limit beyond ctx.
	Timeout time.Duration
	// WorkDir is the child's working directory; empty inherits ours.
	WorkDir string
}

// Invoke starts program with args, attaches no stdin, captures stdout and
// stderr into separate buffers and waits for the process to exit. The child
// is killed and reaped if ctx is done first.
func (e *ExecInvoker) Invoke(ctx context.Context, program string, args []string) (*Invocation, error) {
	ctx, cancel := e.applyTimeout(ctx)
	defer cancel()

	cmd := exec.Command(program, args...)
	cmd.Dir = e.WorkDir
	cmd.Stdin = nil
	cmd.WaitDelay = pipeDrainDelay
	isolateProcessGroup(cmd)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Program: program, Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var err error
	select {
	case <-ctx.Done():
		killProcessGroup(cmd)
		<-done
		return nil, fmt.Errorf("running %s: %w", program, ctx.Err())
	case err = <-done:
	}
	// Reap stragglers left behind by a launcher that did not exec.
	killProcessGroup(cmd)
	if errors.Is(err, exec.ErrWaitDelay) {
		err = nil
	}

	inv := &Invocation{
		Duration: time.Since(start),
		Stdout:   stdoutBuf.Bytes(),
		Stderr:   stderrBuf.Bytes(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running %s: %w", program, err)
		}
		inv.ExitCode = exitErr.ExitCode()
	}
	return inv, nil
}

func (e *ExecInvoker) applyTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.Timeout > 0 {
		return context.WithTimeout(ctx, e.Timeout)
	}
	return ctx, func() {}
}
