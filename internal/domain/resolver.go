package domain

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"depmap.dev/pkg/depmap/internal/adapter"
	m "depmap.dev/pkg/depmap/internal/model"
)

// DefaultIncludeExtensions lists reference suffixes that are always looked up
// relative to the main file, even without a relative hint.
var DefaultIncludeExtensions = []string{".pxi"}

// DependencyResolver maps a recorded dependency reference to the canonical
// path of an existing file.
type DependencyResolver interface {
	// Resolve tries, in order: the reference as recorded, the main file's
	// directory (the reference as recorded, then its final component), and
	// the search paths. When nothing exists the canonical form of the reference
	// is returned with Exists=false. Errors are reserved for invalid input
	// and filesystem failures other than "not found".
	Resolve(ctx context.Context, ref m.DependencyReference) (m.Resolution, error)
}

// ResolverOption configures a DependencyResolver.
type ResolverOption func(*dependencyResolver)

// WithSearchPaths sets the roots scanned as a last resort, in priority order.
func WithSearchPaths(paths ...m.Path) ResolverOption {
	return func(r *dependencyResolver) {
		r.searchPaths = slices.Clone(paths)
	}
}

// WithIncludeExtensions replaces DefaultIncludeExtensions.
func WithIncludeExtensions(extensions ...string) ResolverOption {
	return func(r *dependencyResolver) {
		r.includeExtensions = slices.Clone(extensions)
	}
}

type dependencyResolver struct {
	oracle            adapter.FileOracle
	searchPaths       []m.Path
	includeExtensions []string
}

// NewDependencyResolver constructs a DependencyResolver backed by oracle.
// The resolver keeps no state between calls and is safe for concurrent use.
func NewDependencyResolver(oracle adapter.FileOracle, opts ...ResolverOption) DependencyResolver {
	r := &dependencyResolver{
		oracle:            oracle,
		includeExtensions: slices.Clone(DefaultIncludeExtensions),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *dependencyResolver) Resolve(ctx context.Context, ref m.DependencyReference) (m.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return m.Resolution{}, err
	}

	if err := validateReference(ref); err != nil {
		return m.Resolution{}, err
	}

	absPath, err := r.canonicalize(ref.Reference)
	if err != nil {
		return m.Resolution{}, err
	}

	found, err := r.exists(absPath)
	if err != nil {
		return m.Resolution{}, err
	}

	if found {
		return resolved(ref, absPath, m.StrategyDirect), nil
	}

	if r.searchesRelative(ref) {
		resolution, ok, err := r.resolveNextToMainFile(ref)
		if err != nil || ok {
			return resolution, err
		}
	}

	resolution, ok, err := r.resolveSearchPaths(ref)
	if err != nil || ok {
		return resolution, err
	}

	slog.Debug("Dependency reference unresolved", "mainFile", ref.MainFile, "reference", ref.Reference, "fallback", absPath)

	return m.Resolution{
		Reference: ref,
		Path:      absPath,
		Exists:    false,
		Strategy:  m.StrategyUnresolved,
	}, nil
}

func validateReference(ref m.DependencyReference) error {
	for _, field := range []struct {
		name  string
		value m.Path
	}{
		{"main file", ref.MainFile},
		{"dependency reference", ref.Reference},
	} {
		if strings.TrimSpace(string(field.value)) == "" {
			return &InvalidInputError{Field: field.name, Reason: "must not be empty"}
		}

		if strings.ContainsRune(string(field.value), 0) {
			return &InvalidInputError{Field: field.name, Reason: "contains a NUL byte"}
		}
	}

	return nil
}

func (r *dependencyResolver) searchesRelative(ref m.DependencyReference) bool {
	if ref.RelativeHint {
		return true
	}

	for _, ext := range r.includeExtensions {
		if strings.HasSuffix(string(ref.Reference), ext) {
			return true
		}
	}

	return false
}

// resolveNextToMainFile looks for the reference in the main file's
// directory, first as recorded and then by its final component. The second
// lookup is reported as a hierarchy match when both paths end in the same
// directory names.
func (r *dependencyResolver) resolveNextToMainFile(ref m.DependencyReference) (m.Resolution, bool, error) {
	mainDir := r.oracle.Dir(ref.MainFile)
	recorded := r.oracle.Join(mainDir, ref.Reference)

	resolution, ok, err := r.tryCandidate(ref, recorded, m.StrategyMainDir)
	if err != nil || ok {
		return resolution, ok, err
	}

	byName := r.oracle.Join(mainDir, r.oracle.Base(ref.Reference))
	if byName == recorded {
		return m.Resolution{}, false, nil
	}

	strategy := m.StrategyMainDir

	depth, shared := r.sharedHierarchy(ref)
	if shared {
		strategy = m.StrategyHierarchy
	}

	resolution, ok, err = r.tryCandidate(ref, byName, strategy)
	if ok && shared {
		slog.Debug("Resolved through shared hierarchy", "reference", ref.Reference, "depth", depth, "path", resolution.Path)
	}

	return resolution, ok, err
}

// sharedHierarchy reports whether the reference's directory ends with the
// same directory names as the main file's directory. A reference without a
// directory always qualifies; otherwise the longest common leaf-first run
// must cover at least one segment.
func (r *dependencyResolver) sharedHierarchy(ref m.DependencyReference) (int, bool) {
	refDirs := Segments(r.oracle.Dir(ref.Reference))
	if len(refDirs) == 0 {
		return 0, true
	}

	mainDirs := Segments(r.oracle.Dir(ref.MainFile))
	depth := commonLeafDepth(refDirs, mainDirs)

	return depth, depth > 0
}

func (r *dependencyResolver) resolveSearchPaths(ref m.DependencyReference) (m.Resolution, bool, error) {
	for _, root := range r.searchPaths {
		resolution, ok, err := r.tryCandidate(ref, r.oracle.Join(root, ref.Reference), m.StrategySearchPath)
		if err != nil || ok {
			return resolution, ok, err
		}
	}

	return m.Resolution{}, false, nil
}

func (r *dependencyResolver) tryCandidate(ref m.DependencyReference, candidate m.Path, strategy m.Strategy) (m.Resolution, bool, error) {
	canonical, err := r.canonicalize(candidate)
	if err != nil {
		return m.Resolution{}, false, err
	}

	found, err := r.exists(canonical)
	if err != nil || !found {
		return m.Resolution{}, false, err
	}

	return resolved(ref, canonical, strategy), true, nil
}

func (r *dependencyResolver) canonicalize(path m.Path) (m.Path, error) {
	canonical, err := r.oracle.Canonicalize(path)
	if err != nil {
		return "", &FileAccessError{Path: path, Err: err}
	}

	return canonical, nil
}

func (r *dependencyResolver) exists(path m.Path) (bool, error) {
	found, err := r.oracle.Exists(path)
	if err != nil {
		slog.Error("Failed to check dependency candidate", "path", path, "error", err)
		return false, &FileAccessError{Path: path, Err: err}
	}

	return found, nil
}

func resolved(ref m.DependencyReference, path m.Path, strategy m.Strategy) m.Resolution {
	return m.Resolution{
		Reference: ref,
		Path:      path,
		Exists:    true,
		Strategy:  strategy,
	}
}
