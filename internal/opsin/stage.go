package opsin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const stagePrefix = "go2opsin-input-"

// StagedInput is a transient input file owned by exactly one invocation.
type StagedInput struct {
	path string
	once sync.Once
	err  error
}

// Stage writes the request to a uniquely named file under dir (os.TempDir()
// when dir is empty). The caller must call Remove on every exit path.
func Stage(dir string, req Request) (*StagedInput, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, stagePrefix+uuid.New().String()+".txt")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("creating staged input: %w", err)
	}
	if _, err := f.Write(req.payload()); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing staged input: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("closing staged input: %w", err)
	}
	return &StagedInput{path: path}, nil
}

// Path returns the staged file path.
func (s *StagedInput) Path() string {
	return s.path
}

// Remove deletes the staged file. It is safe to call more than once and
// does not report a file that is already gone.
func (s *StagedInput) Remove() error {
	s.once.Do(func() {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.err = fmt.Errorf("removing staged input: %w", err)
		}
	})
	return s.err
}
