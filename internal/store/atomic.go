package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrNotFound reports a read of a path that does not exist.
var ErrNotFound = errors.New("artifact not found")

// ErrStorage reports an I/O failure during an atomic write or a read.
var ErrStorage = errors.New("storage failure")

// writeAtomic runs fn against a temporary file colocated with path and, only
// after fn succeeds and the file is flushed and closed, replaces path with
// it. The temp file lives in the destination directory so the final step is
// a same-filesystem rename, and its uuid suffix keeps concurrent writers to
// the same destination from sharing scratch space. On any failure the
// destination is left untouched and the temp file is removed.
func writeAtomic(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating directory %s: %v", ErrStorage, dir, err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: creating temp file %s: %v", ErrStorage, tmp, err)
	}

	if err := fn(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", ErrStorage, path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: syncing %s: %v", ErrStorage, tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: closing %s: %v", ErrStorage, tmp, err)
	}

	// The rename happens only after a fully successful write.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		os.Remove(tmp)
		return fmt.Errorf("%w: removing previous %s: %v", ErrStorage, path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: renaming %s into place: %v", ErrStorage, tmp, err)
	}
	return nil
}

// open maps a missing path to ErrNotFound and any other failure to
// ErrStorage, so callers can branch with errors.Is.
func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStorage, path, err)
	}
	return f, nil
}
