package levels

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes a level to path, creating parent directories as needed. The
// file is written to a temporary sibling and renamed into place, so path
// either keeps its old content or holds the complete new level.
func Save(l *Level, path string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("levels: create %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("levels: save %s: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err := Encode(f, l); err != nil {
		return fmt.Errorf("levels: encode %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("levels: sync %s: %w", path, err)
	}
	if err := f.Chmod(0644); err != nil {
		return fmt.Errorf("levels: chmod %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("levels: close %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("levels: rename %s: %w", path, err)
	}
	return nil
}

// Load reads a level file. OS errors keep their identity (errors.Is with
// fs.ErrNotExist works) and parse errors wrap ErrMalformed.
func Load(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	l, err := Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", path, err)
	}
	return l, nil
}
