package adapter

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// fileStorage implements Storage on a single local JSON file
type fileStorage struct {
	path string
}

// NewFile creates a file-backed Storage at the given path. Parent
// directories are created lazily on the first write.
func NewFile(path string) Storage {
	return &fileStorage{path: path}
}

func (s *fileStorage) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read storage file", goerr.V("path", s.path))
	}
	return data, nil
}

func (s *fileStorage) Write(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create storage directory", goerr.V("dir", dir))
	}

	// Write to a sibling temp file and rename so a crash mid-write never
	// leaves a truncated slot behind.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("dir", dir))
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to write storage file", goerr.V("path", tmpPath))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to close storage file", goerr.V("path", tmpPath))
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to replace storage file", goerr.V("path", s.path))
	}
	return nil
}

func (s *fileStorage) Remove() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to remove storage file", goerr.V("path", s.path))
	}
	return nil
}
