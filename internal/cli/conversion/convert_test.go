// Package conversion tests the convert command end to end against the mock
// OPSIN launcher.
// Related: internal/cli/conversion/convert.go, mocks/scripts/mock-opsin.sh
// Tags: cli, convert, batch, output, exit-codes
package conversion

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go2opsin/go2opsin/internal/cli/shared"
	"github.com/go2opsin/go2opsin/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

// setupMock isolates config lookup and returns the flags pointing convert
// at the mock launcher and an empty jar.
func setupMock(t *testing.T) []string {
	t.Helper()
	mock := testutil.MockOpsinPath(t)
	home := testutil.IsolateHome(t)
	jar := testutil.WriteEmptyJar(t, home)
	return []string{"--java", mock, "--jar", jar, "--config", filepath.Join(home, "go2opsin.yml")}
}

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "go2opsin", SilenceUsage: true, SilenceErrors: true}
	shared.AddGroups(root)
	shared.AddGlobalFlags(root)
	Register(root)
	return root
}

func runConvertCmd(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	root := newTestRoot()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"convert"}, args...))
	err := root.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestConvert_Text(t *testing.T) {
	tests := map[string]struct {
		args       []string
		wantStdout string
		wantStderr []string
	}{
		"single name": {
			args:       []string{"ethane"},
			wantStdout: "CC\n",
		},
		"format flag": {
			args:       []string{"-f", "StdInChIKey", "water"},
			wantStdout: "XLYOFNOQVPJJNP-UHFFFAOYSA-N\n",
		},
		"allow acid modifier": {
			args:       []string{"-a", "acetic"},
			wantStdout: "CC(=O)O\n",
		},
		"batch keeps alignment around failures": {
			args:       []string{"methane", "ethane", "blah", "water"},
			wantStdout: "C\nCC\n\nO\n",
			wantStderr: []string{"warning: blah is unparsable"},
		},
		"uninterpretable scalar": {
			args:       []string{"blah"},
			wantStdout: "\n",
			wantStderr: []string{"warning: blah is unparsable"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			base := setupMock(t)
			res := runConvertCmd(t, "", append(base, tt.args...)...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.wantStdout, res.stdout)
			for _, want := range tt.wantStderr {
				assert.Contains(t, res.stderr, want)
			}
			if len(tt.wantStderr) == 0 {
				assert.Empty(t, res.stderr)
			}
		})
	}
}

func TestConvert_ExitCodes(t *testing.T) {
	tests := map[string]struct {
		args        []string
		env         map[string]string
		wantCode    int
		errContains string
	}{
		"invalid format suggests a match": {
			args:        []string{"-f", "SMOLES", "ethane"},
			wantCode:    shared.ExitInvalidArguments,
			errContains: "Did you mean 'SMILES'?",
		},
		"no names": {
			args:        []string{},
			wantCode:    shared.ExitInvalidArguments,
			errContains: "no chemical names given",
		},
		"invalid output style": {
			args:        []string{"--output", "xml", "ethane"},
			wantCode:    shared.ExitInvalidArguments,
			errContains: "invalid --output",
		},
		"CML batch cannot be aligned": {
			args:        []string{"-f", "CML", "ethane", "water"},
			wantCode:    shared.ExitInvalidArguments,
			errContains: "CML",
		},
		"missing jar": {
			args:        []string{"--jar", "/nonexistent/opsin.jar", "ethane"},
			wantCode:    shared.ExitMissingDependency,
			errContains: "go2opsin doctor",
		},
		"missing java": {
			args:        []string{"--java", "/nonexistent/bin/java", "ethane"},
			wantCode:    shared.ExitMissingDependency,
			errContains: "opsin invocation failed",
		},
		"interpreter crash": {
			args:        []string{"ethane"},
			env:         map[string]string{"MOCK_OPSIN_CRASH": "Exception in thread \"main\""},
			wantCode:    shared.ExitConversionFailed,
			errContains: "exit code 1",
		},
		"negative timeout": {
			args:        []string{"--timeout", "-1s", "ethane"},
			wantCode:    shared.ExitInvalidArguments,
			errContains: "--timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			base := setupMock(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			res := runConvertCmd(t, "", append(base, tt.args...)...)
			require.Error(t, res.err)
			assert.Equal(t, tt.wantCode, shared.ExitCode(res.err))
			assert.Contains(t, res.err.Error(), tt.errContains)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestConvert_Strict(t *testing.T) {
	base := setupMock(t)

	res := runConvertCmd(t, "", append(base, "--strict", "ethane", "water")...)
	require.NoError(t, res.err)

	res = runConvertCmd(t, "", append(base, "--strict", "ethane", "blah")...)
	require.Error(t, res.err)
	assert.Equal(t, shared.ExitConversionFailed, shared.ExitCode(res.err))
	assert.True(t, shared.Silent(res.err))
	assert.Equal(t, "CC\n\n", res.stdout, "results are still written")
}

func TestConvert_JSON(t *testing.T) {
	base := setupMock(t)

	res := runConvertCmd(t, "", append(base, "--output", "json", "-f", "StdInChIKey", "methane", "blah", "water")...)
	require.NoError(t, res.err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, "ok", report.Status)
	assert.Equal(t, "StdInChIKey", report.Format)
	assert.True(t, report.Batch)
	assert.Equal(t, []Entry{
		{Name: "methane", Value: "VNWKTOKETHGBQD-UHFFFAOYSA-N", Interpreted: true},
		{Name: "blah", Value: "", Interpreted: false},
		{Name: "water", Value: "XLYOFNOQVPJJNP-UHFFFAOYSA-N", Interpreted: true},
	}, report.Results)
	require.Len(t, report.Diagnostics, 1)
	assert.Contains(t, report.Diagnostics[0], "blah is unparsable")
	assert.NotContains(t, res.stderr, "warning:", "structured output carries the diagnostics")
}

func TestConvert_JSONFailure(t *testing.T) {
	base := setupMock(t)
	t.Setenv("MOCK_OPSIN_CRASH", "java.lang.OutOfMemoryError")

	res := runConvertCmd(t, "", append(base, "--output", "json", "ethane")...)
	require.Error(t, res.err)
	assert.True(t, shared.Silent(res.err))
	assert.Equal(t, shared.ExitConversionFailed, shared.ExitCode(res.err))

	var report Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, "failed", report.Status)
	assert.Equal(t, 1, report.ExitCode)
	assert.Contains(t, report.Error, "java.lang.OutOfMemoryError")
	assert.Empty(t, report.Results)
}

func TestConvert_YAML(t *testing.T) {
	base := setupMock(t)

	res := runConvertCmd(t, "", append(base, "--output", "yaml", "ethane")...)
	require.NoError(t, res.err)

	var report Report
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &report))
	assert.Equal(t, "ok", report.Status)
	assert.False(t, report.Batch)
	assert.Equal(t, []Entry{{Name: "ethane", Value: "CC", Interpreted: true}}, report.Results)
}

func TestConvert_InputFile(t *testing.T) {
	base := setupMock(t)
	input := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(input, []byte("methane\n\nwater\r\n  \n"), 0o644))

	res := runConvertCmd(t, "", append(base, "--input", input)...)
	require.NoError(t, res.err)
	assert.Equal(t, "C\nO\n", res.stdout)
}

func TestConvert_InputStdinIsBatch(t *testing.T) {
	base := setupMock(t)

	res := runConvertCmd(t, "ethane\n", append(base, "--input", "-", "--output", "json")...)
	require.NoError(t, res.err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &report))
	assert.True(t, report.Batch, "names read with --input always form a batch")
	assert.Equal(t, []Entry{{Name: "ethane", Value: "CC", Interpreted: true}}, report.Results)
}

func TestConvert_OutFile(t *testing.T) {
	base := setupMock(t)
	out := filepath.Join(t.TempDir(), "results.txt")

	res := runConvertCmd(t, "", append(base, "--out", out, "methane", "ethane")...)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "C\nCC\n", string(data))
}

func TestConvert_ConfigFileAndEnv(t *testing.T) {
	base := setupMock(t)
	configPath := base[len(base)-1]
	require.NoError(t, os.WriteFile(configPath, []byte("output_format: StdInChI\n"), 0o644))

	res := runConvertCmd(t, "", append(base, "ethane")...)
	require.NoError(t, res.err)
	assert.Equal(t, "InChI=1S/C2H6/c1-2/h1-2H3\n", res.stdout)

	t.Setenv("GO2OPSIN_OUTPUT_FORMAT", "InChI")
	res = runConvertCmd(t, "", append(base, "ethane")...)
	require.NoError(t, res.err)
	assert.Equal(t, "InChI=1/C2H6/c1-2/h1-2H3\n", res.stdout, "environment beats the config file")

	res = runConvertCmd(t, "", append(base, "-f", "SMILES", "ethane")...)
	require.NoError(t, res.err)
	assert.Equal(t, "CC\n", res.stdout, "flags beat the environment")
}

func TestConvert_ModifierFlagsReachOpsin(t *testing.T) {
	base := setupMock(t)
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	t.Setenv("MOCK_OPSIN_ARGS_FILE", argsFile)

	res := runConvertCmd(t, "", append(base, "-w", "-s", "-r", "-a", "ethane")...)
	require.NoError(t, res.err)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"-osmi", "-a", "-r", "-s", "-w"}, lines[:5])
}

func TestConvert_Progress(t *testing.T) {
	base := setupMock(t)

	res := runConvertCmd(t, "", append(base, "--progress", "methane", "ethane")...)
	require.NoError(t, res.err)
	assert.Equal(t, "C\nCC\n", res.stdout)
	assert.Contains(t, res.stderr, "Converting 2 names to SMILES")
	assert.Contains(t, res.stderr, "[OK] Converted 2 names to SMILES")
}

func TestConvert_DebugLogging(t *testing.T) {
	base := setupMock(t)

	res := runConvertCmd(t, "", append(base, "--debug", "ethane")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "level=debug")
	assert.Contains(t, res.stderr, "Running command")
}

func TestCollectNames(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args    []string
		input   string
		stdin   string
		want    []string
		wantErr string
	}{
		"args only": {
			args: []string{"ethane", "acetic acid"},
			want: []string{"ethane", "acetic acid"},
		},
		"stdin appended after args": {
			args:  []string{"water"},
			input: "-",
			stdin: "methane\n\n  ethane  \n",
			want:  []string{"water", "methane", "ethane"},
		},
		"nothing": {
			wantErr: "no chemical names given",
		},
		"blank stdin": {
			input:   "-",
			stdin:   "\n\n",
			wantErr: "no chemical names given",
		},
		"missing file": {
			input:   "/nonexistent/names.txt",
			wantErr: "opening input file",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := collectNames(tt.args, tt.input, strings.NewReader(tt.stdin))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
