// Package progress_test tests progress display rendering, completion marks, and spinner lifecycle.
// Related: internal/progress/display.go
// Tags: progress, display, rendering, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go2opsin/go2opsin/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ttyUnicode = progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true, SupportsColor: true, Width: 80}
	pipe       = progress.TerminalCapabilities{}
)

func TestProgressDisplay_Start(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps       progress.TerminalCapabilities
		task       progress.TaskInfo
		wantOutput string
		wantErr    bool
	}{
		"pipe prints the message": {
			caps:       pipe,
			task:       progress.TaskInfo{Names: 1, Format: "SMILES"},
			wantOutput: "Converting 1 name to SMILES\n",
		},
		"pipe pluralizes batches": {
			caps:       pipe,
			task:       progress.TaskInfo{Names: 4, Format: "StdInChIKey"},
			wantOutput: "Converting 4 names to StdInChIKey\n",
		},
		"tty does not print a plain line": {
			caps:       ttyUnicode,
			task:       progress.TaskInfo{Names: 2, Format: "InChI"},
			wantOutput: "",
		},
		"invalid task": {
			caps:    pipe,
			task:    progress.TaskInfo{Names: 0, Format: "SMILES"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			display := progress.NewProgressDisplay(tt.caps, &buf)

			err := display.Start(tt.task)
			defer display.StopSpinner()
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, display.Running())
				return
			}
			require.NoError(t, err)
			assert.True(t, display.Running())
			assert.Equal(t, tt.wantOutput, buf.String())
		})
	}
}

func TestProgressDisplay_Succeed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps         progress.TerminalCapabilities
		wantContains []string
	}{
		"ascii marks": {
			caps:         pipe,
			wantContains: []string{"[OK]", "Converted 3 names to SMILES"},
		},
		"unicode colored mark": {
			caps:         ttyUnicode,
			wantContains: []string{"✓", "\x1b[32m", "Converted 3 names to SMILES"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			display := progress.NewProgressDisplay(tt.caps, &buf)
			task := progress.TaskInfo{Names: 3, Format: "SMILES"}

			require.NoError(t, display.Start(task))
			buf.Reset()
			display.Succeed(task)

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
			assert.False(t, display.Running())
		})
	}
}

func TestProgressDisplay_Fail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	display := progress.NewProgressDisplay(pipe, &buf)
	task := progress.TaskInfo{Names: 1, Format: "CML"}

	require.NoError(t, display.Start(task))
	display.Fail(task, errors.New("opsin invocation failed with exit code 1"))

	assert.Contains(t, buf.String(), "[FAIL] Converting 1 name to CML failed: opsin invocation failed with exit code 1")
	assert.False(t, display.Running())
}

func TestProgressDisplay_StopSpinnerIsIdempotent(t *testing.T) {
	t.Parallel()

	display := progress.NewProgressDisplay(ttyUnicode, &bytes.Buffer{})
	require.NoError(t, display.Start(progress.TaskInfo{Names: 1, Format: "SMILES"}))

	display.StopSpinner()
	display.StopSpinner()
}
