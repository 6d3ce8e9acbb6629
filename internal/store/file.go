package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/matsen/clip/internal/logger"
)

// Backend loads and saves the whole store value.
type Backend interface {
	Load() (*Data, error)
	Save(d *Data) error
}

// Locker is implemented by backends that can serialize access across processes.
// The returned function releases the lock.
type Locker interface {
	Lock(exclusive bool) (unlock func() error, err error)
}

// FileBackend stores the value as a single JSON file.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a backend for the JSON file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// LockPath returns the path of the sidecar lock file.
func (f *FileBackend) LockPath() string {
	return f.Path + ".lock"
}

// Load reads the store file. A missing or whitespace-only file is the empty store.
func (f *FileBackend) Load() (*Data, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Logger.Debug().Str("path", f.Path).Msg("store file absent, using empty store")
			return Empty(), nil
		}
		return nil, &IOError{Op: "read", Path: f.Path, Err: err}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Empty(), nil
	}

	d, err := decode(raw)
	if err != nil {
		return nil, &CorruptStoreError{Path: f.Path, Err: err}
	}

	logger.Logger.Debug().
		Str("path", f.Path).
		Int("indexed", len(d.IndexedStorage)).
		Int("keyed", len(d.KeyStorage)).
		Msg("loaded store")
	return d, nil
}

// Save overwrites the store file atomically.
// Uses temp file + rename so a failed write never truncates the old value.
func (f *FileBackend) Save(d *Data) error {
	data, err := Encode(d.normalize())
	if err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("encoding store: %w", err)}
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("creating directory: %w", err)}
	}

	tmpFile, err := os.CreateTemp(dir, ".clip-*.json")
	if err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("writing temp file: %w", err)}
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("syncing temp file: %w", err)}
	}
	if err := tmpFile.Close(); err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("closing temp file: %w", err)}
	}

	if err := os.Rename(tmpPath, f.Path); err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: fmt.Errorf("renaming temp file: %w", err)}
	}

	success = true
	logger.Logger.Debug().Str("path", f.Path).Int("bytes", len(data)).Msg("saved store")
	return nil
}

// Lock takes an advisory lock on the sidecar lock file.
func (f *FileBackend) Lock(exclusive bool) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return nil, &IOError{Op: "lock", Path: f.LockPath(), Err: err}
	}
	lf, err := os.OpenFile(f.LockPath(), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, &IOError{Op: "lock", Path: f.LockPath(), Err: err}
	}
	if err := lockFile(lf, exclusive); err != nil {
		lf.Close()
		return nil, &IOError{Op: "lock", Path: f.LockPath(), Err: err}
	}
	logger.Logger.Trace().Str("path", f.LockPath()).Bool("exclusive", exclusive).Msg("lock acquired")

	return func() error {
		unlockErr := unlockFile(lf)
		closeErr := lf.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
