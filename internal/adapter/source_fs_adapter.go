package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	m "depmap.dev/pkg/depmap/internal/model"
)

// DefaultSourcePatterns selects the files inspected for dependency references.
var DefaultSourcePatterns = []string{"*.c", "*.cpp"}

// SourceFilter narrows discovery. Include globs are matched against the file
// name, exclude globs against the slash-separated path ("**" crosses directories).
type SourceFilter struct {
	Include []string
	Exclude []string
}

// SourceFSAdapter discovers candidate generated sources on a filesystem so
// the domain layer never touches the disk directly.
type SourceFSAdapter interface {
	// Get expands Go-style path patterns ("./...", "./build/...", "dir",
	// "file.c") into a sorted, de-duplicated list of files.
	Get(ctx context.Context, paths []m.Path, filter SourceFilter) ([]m.Path, error)
}

// LocalSourceFSAdapter implements SourceFSAdapter on an afero filesystem.
type LocalSourceFSAdapter struct {
	fs afero.Fs
}

// NewSourceFSAdapter constructs a SourceFSAdapter backed by fsys.
func NewSourceFSAdapter(fsys afero.Fs) *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{fs: fsys}
}

// NewLocalSourceFSAdapter constructs a SourceFSAdapter for the local disk.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return NewSourceFSAdapter(afero.NewOsFs())
}

var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
}

// Get walks every path pattern and collects matching files.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, filter SourceFilter) ([]m.Path, error) {
	matcher, err := newSourceMatcher(filter)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	seen := map[m.Path]bool{}

	var files []m.Path

	collect := func(path string) {
		p := m.Path(filepath.Clean(path))
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, pattern := range paths {
		root, recursive := splitPathPattern(string(pattern))

		if err := a.walk(ctx, root, recursive, matcher, collect); err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i] < files[j]
	})

	slog.Debug("Discovered sources", "patterns", len(paths), "files", len(files))

	return files, nil
}

func (a *LocalSourceFSAdapter) walk(ctx context.Context, root string, recursive bool, matcher *sourceMatcher, collect func(string)) error {
	info, err := a.fs.Stat(root)
	if err != nil {
		slog.Error("Failed to stat source path", "path", root, "error", err)
		return fmt.Errorf("stat %s: %w", root, err)
	}

	// Explicit files bypass the include globs but still honour excludes.
	if !info.IsDir() {
		if !matcher.excluded(root) {
			collect(root)
		}

		return nil
	}

	return afero.Walk(a.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() {
			if path != root && (!recursive || skippedDirs[info.Name()]) {
				return filepath.SkipDir
			}

			return nil
		}

		if matcher.matches(path) {
			collect(path)
		}

		return nil
	})
}

// splitPathPattern turns "./pkg/..." into ("./pkg", true).
func splitPathPattern(pattern string) (string, bool) {
	switch {
	case pattern == "":
		return ".", false
	case pattern == "...":
		return ".", true
	case strings.HasSuffix(pattern, "/..."):
		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "/"
		}

		return root, true
	}

	return pattern, false
}

type sourceMatcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func newSourceMatcher(filter SourceFilter) (*sourceMatcher, error) {
	includePatterns := filter.Include
	if len(includePatterns) == 0 {
		includePatterns = DefaultSourcePatterns
	}

	include, err := compileGlobs(includePatterns)
	if err != nil {
		return nil, err
	}

	exclude, err := compileGlobs(filter.Exclude)
	if err != nil {
		return nil, err
	}

	return &sourceMatcher{include: include, exclude: exclude}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}

		globs = append(globs, g)
	}

	return globs, nil
}

func (sm *sourceMatcher) matches(path string) bool {
	if sm.excluded(path) {
		return false
	}

	name := filepath.Base(path)
	for _, g := range sm.include {
		if g.Match(name) {
			return true
		}
	}

	return false
}

func (sm *sourceMatcher) excluded(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, g := range sm.exclude {
		if g.Match(slashed) {
			return true
		}
	}

	return false
}
