package opsin

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockOpsinPath returns the absolute path of the mock Java launcher that
// emulates the OPSIN jar.
func mockOpsinPath(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("mock-opsin.sh requires a POSIX shell")
	}
	path, err := filepath.Abs(filepath.Join("..", "..", "mocks", "scripts", "mock-opsin.sh"))
	require.NoError(t, err)
	if _, err := os.Stat(path); err != nil {
		t.Skipf("mock-opsin.sh not found at %s", path)
	}
	return path
}

// mockOptions returns options that run the mock launcher against an empty
// jar file and stage input under a private scratch directory.
func mockOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	jar := filepath.Join(dir, DefaultJarPath)
	require.NoError(t, os.WriteFile(jar, nil, 0o644))

	scratch := filepath.Join(dir, "scratch")
	require.NoError(t, os.Mkdir(scratch, 0o755))

	opts := DefaultOptions()
	opts.JavaCmd = mockOpsinPath(t)
	opts.JarPath = jar
	opts.ScratchDir = scratch
	return opts
}

// requireEmptyDir fails if dir contains any entries.
func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Empty(t, names, "staged input left behind in %s", dir)
}

// fakeInvoker returns canned invocations and records what it was asked to run.
type fakeInvoker struct {
	mu        sync.Mutex
	inv       *Invocation
	err       error
	calls     [][]string
	inputs    []string
	sawStaged []bool
}

func (f *fakeInvoker) Invoke(_ context.Context, program string, args []string) (*Invocation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{program}, args...))
	if len(args) > 0 {
		path := args[len(args)-1]
		data, err := os.ReadFile(path)
		f.sawStaged = append(f.sawStaged, err == nil)
		f.inputs = append(f.inputs, string(data))
	}
	return f.inv, f.err
}
