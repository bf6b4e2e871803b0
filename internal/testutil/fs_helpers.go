// Package testutil provides test utilities and helpers for go2opsin tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// jarName mirrors the default jar file name so helpers need not import the
// package under test.
const jarName = "opsin.jar"

// RepoRoot returns the repository root, located relative to this file.
func RepoRoot(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// MockOpsinPath returns the absolute path of mocks/scripts/mock-opsin.sh,
// a stand-in for `java -jar opsin.jar`. The test is skipped on Windows or
// when the script is missing.
func MockOpsinPath(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("mock-opsin.sh requires a POSIX shell")
	}
	path, err := filepath.Abs(filepath.Join(RepoRoot(t), "mocks", "scripts", "mock-opsin.sh"))
	if err != nil {
		t.Fatalf("resolving mock-opsin.sh: %v", err)
	}
	if !FileExists(path) {
		t.Skipf("mock-opsin.sh not found at %s", path)
	}
	return path
}

// IsolateHome points HOME and XDG_CONFIG_HOME at a fresh temp dir so no real
// user config is read. Callers cannot use t.Parallel().
func IsolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

// WriteEmptyJar creates an empty opsin.jar in dir and returns its path.
// The mock launcher never reads it; it only has to exist.
func WriteEmptyJar(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, jarName)
	WriteFile(t, path, "")
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}
