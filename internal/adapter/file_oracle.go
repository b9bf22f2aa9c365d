// Package adapter contains filesystem, parsing and persistence adapters for depmap.
package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/spf13/afero"

	m "depmap.dev/pkg/depmap/internal/model"
)

// FileOracle answers the filesystem questions the dependency resolver needs.
// Exists and Canonicalize may query the filesystem but never modify it; the
// remaining methods are pure path manipulation.
type FileOracle interface {
	// Exists reports whether path exists. A missing file is (false, nil);
	// any other failure (e.g. permission denied) is returned as an error.
	Exists(path m.Path) (bool, error)

	// Canonicalize returns the absolute, cleaned form of path with symlinks
	// resolved where the backing filesystem supports it. The path need not exist.
	Canonicalize(path m.Path) (m.Path, error)

	// Join appends name to dir. An absolute name is returned unchanged.
	Join(dir, name m.Path) m.Path

	// Dir returns the directory part of path.
	Dir(path m.Path) m.Path

	// Base returns the last element of path.
	Base(path m.Path) m.Path
}

// FileOracleOption configures an AferoFileOracle.
type FileOracleOption func(*AferoFileOracle)

// WithWorkingDir sets the directory relative paths are made absolute
// against. When unset the process working directory is used at call time.
func WithWorkingDir(dir string) FileOracleOption {
	return func(o *AferoFileOracle) {
		o.workDir = dir
	}
}

// WithSymlinkResolution enables resolving symlinks during canonicalization.
// Only meaningful for filesystems backed by the operating system.
func WithSymlinkResolution(enabled bool) FileOracleOption {
	return func(o *AferoFileOracle) {
		o.resolveSymlinks = enabled
	}
}

// AferoFileOracle implements FileOracle on top of an afero filesystem.
type AferoFileOracle struct {
	fs              afero.Fs
	workDir         string
	resolveSymlinks bool
}

// NewFileOracle constructs a FileOracle backed by the given filesystem.
func NewFileOracle(fsys afero.Fs, opts ...FileOracleOption) *AferoFileOracle {
	oracle := &AferoFileOracle{fs: fsys}
	for _, opt := range opts {
		opt(oracle)
	}

	return oracle
}

// NewLocalFileOracle constructs a FileOracle for the local disk.
func NewLocalFileOracle() *AferoFileOracle {
	return NewFileOracle(afero.NewOsFs(), WithSymlinkResolution(true))
}

// Exists stats path on the backing filesystem.
func (o *AferoFileOracle) Exists(path m.Path) (bool, error) {
	_, err := o.fs.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if isNotExist(err) {
		return false, nil
	}

	return false, err
}

// Canonicalize makes path absolute and, if enabled, resolves symlinks in its
// longest existing prefix.
func (o *AferoFileOracle) Canonicalize(path m.Path) (m.Path, error) {
	abs, err := o.abs(string(path))
	if err != nil {
		return "", err
	}

	if !o.resolveSymlinks {
		return m.Path(abs), nil
	}

	resolved, err := evalExistingSymlinks(abs)
	if err != nil {
		return "", err
	}

	return m.Path(resolved), nil
}

// Join appends name to dir unless name is already absolute.
func (o *AferoFileOracle) Join(dir, name m.Path) m.Path {
	if filepath.IsAbs(string(name)) {
		return m.Path(filepath.Clean(string(name)))
	}

	return m.Path(filepath.Join(string(dir), string(name)))
}

// Dir returns the directory part of path.
func (o *AferoFileOracle) Dir(path m.Path) m.Path {
	return m.Path(filepath.Dir(string(path)))
}

// Base returns the last element of path.
func (o *AferoFileOracle) Base(path m.Path) m.Path {
	return m.Path(filepath.Base(string(path)))
}

func (o *AferoFileOracle) abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	base := o.workDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}

		base = wd
	}

	return filepath.Join(base, path), nil
}

// evalExistingSymlinks resolves symlinks for the deepest existing ancestor
// of path and re-appends the remaining components. Only missing components
// are skipped; any other failure (e.g. a symlink loop) is returned.
func evalExistingSymlinks(path string) (string, error) {
	var remainder []string

	current := path

	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			slices.Reverse(remainder)
			return filepath.Join(append([]string{resolved}, remainder...)...), nil
		}

		if !isNotExist(err) {
			return "", fmt.Errorf("resolve symlinks in %s: %w", path, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return path, nil
		}

		remainder = append(remainder, filepath.Base(current))
		current = parent
	}
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
