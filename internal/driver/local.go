package driver

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// LocalDriver stores files under a root directory on the local disk.
type LocalDriver struct {
	Root string
}

func NewLocalDriver(root string) (*LocalDriver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root '%s': %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create root '%s': %w", abs, err)
	}
	return &LocalDriver{Root: abs}, nil
}

// resolve maps a relative slash path under Root, rejecting escapes.
func (d *LocalDriver) resolve(rel string) (string, error) {
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("path '%s' escapes the store root", rel)
		}
	}
	return filepath.Join(d.Root, filepath.FromSlash(path.Clean("/"+rel))), nil
}

func (d *LocalDriver) ReadFile(rel string) ([]byte, error) {
	p, err := d.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

func (d *LocalDriver) WriteFile(rel string, data []byte) error {
	p, err := d.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (d *LocalDriver) Exists(rel string) bool {
	p, err := d.resolve(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

func (d *LocalDriver) MkdirAll(rel string) error {
	p, err := d.resolve(rel)
	if err != nil {
		return err
	}
	return os.MkdirAll(p, 0o755)
}

func (d *LocalDriver) ListDirs(rel string) ([]string, error) {
	p, err := d.resolve(rel)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (d *LocalDriver) RemoveAll(rel string) error {
	p, err := d.resolve(rel)
	if err != nil {
		return err
	}
	if p == d.Root {
		return fmt.Errorf("refusing to remove the store root")
	}
	return os.RemoveAll(p)
}

func (d *LocalDriver) Close() error {
	return nil
}
