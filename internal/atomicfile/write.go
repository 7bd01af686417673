// Package atomicfile writes files through a temporary sibling and an atomic
// rename, so a reader sees either the old content or the complete new one.

package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFrom creates path by streaming fill into a temp file in the same
// directory, then syncs, sets perm and renames it into place. The parent
// directory must already exist. On any failure the temp file is removed and
// path is left untouched.
func WriteFrom(path string, perm os.FileMode, fill func(w io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmpName)
		}
	}()

	if err = fill(f); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
