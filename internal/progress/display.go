package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// ProgressDisplay orchestrates the display of progress indicators
type ProgressDisplay struct {
	capabilities TerminalCapabilities
	out          io.Writer
	current      *TaskInfo
	started      time.Time
	spinner      *spinner.Spinner
	symbols      ProgressSymbols
}

// NewProgressDisplay creates a new progress display writing to out with the
// given terminal capabilities
func NewProgressDisplay(caps TerminalCapabilities, out io.Writer) *ProgressDisplay {
	return &ProgressDisplay{
		capabilities: caps,
		out:          out,
		symbols:      SelectSymbols(caps),
	}
}

// Start begins displaying progress for a task
func (p *ProgressDisplay) Start(task TaskInfo) error {
	if err := task.Validate(); err != nil {
		return err
	}

	task.Status = TaskRunning
	p.current = &task
	p.started = time.Now()
	msg := buildTaskMessage(task, "Converting")

	if p.capabilities.IsTTY {
		p.spinner = spinner.New(
			spinner.CharSets[p.symbols.SpinnerSet],
			100*time.Millisecond,
			writerOption(p.out),
		)
		p.spinner.Suffix = " " + msg
		p.spinner.Start()
	} else {
		fmt.Fprintln(p.out, msg)
	}

	return nil
}

// writerOption points the spinner at out; the spinner animates only when
// its writer file is a terminal.
func writerOption(out io.Writer) spinner.Option {
	if f, ok := out.(*os.File); ok {
		return spinner.WithWriterFile(f)
	}
	return spinner.WithWriter(out)
}

// Succeed stops the spinner and displays completion status
func (p *ProgressDisplay) Succeed(task TaskInfo) {
	p.StopSpinner()
	mark := checkmark(p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s (%s)\n", mark, buildTaskMessage(task, "Converted"), formatElapsed(time.Since(p.started)))
	p.current = nil
}

// Fail stops the spinner and displays failure status
func (p *ProgressDisplay) Fail(task TaskInfo, err error) {
	p.StopSpinner()
	mark := failureMark(p.symbols, p.capabilities.SupportsColor)
	fmt.Fprintf(p.out, "%s %s failed: %v\n", mark, buildTaskMessage(task, "Converting"), err)
	p.current = nil
}

// Running reports whether a task is in progress
func (p *ProgressDisplay) Running() bool {
	return p.current != nil
}

// StopSpinner stops the spinner without showing completion/failure
func (p *ProgressDisplay) StopSpinner() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
