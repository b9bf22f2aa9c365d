package domain

import (
	"iter"
	"path/filepath"
	"slices"
	"strings"

	m "depmap.dev/pkg/depmap/internal/model"
)

// HierarchySegments yields the components of path from the leaf upward,
// e.g. "/home/pi/workspace" yields "workspace", "pi", "home". The path is
// cleaned first, so trailing separators and "." components never produce
// empty segments. It performs no I/O.
func HierarchySegments(path m.Path) iter.Seq[string] {
	return func(yield func(string) bool) {
		remaining := filepath.Clean(string(path))
		if remaining == "." {
			return
		}

		for remaining != "" {
			dir, name := filepath.Split(remaining)
			if name == "" {
				return
			}

			if !yield(name) {
				return
			}

			remaining = strings.TrimRight(dir, string(filepath.Separator))
		}
	}
}

// Segments collects HierarchySegments into a slice.
func Segments(path m.Path) []string {
	return slices.Collect(HierarchySegments(path))
}

// commonLeafDepth counts how many leading (leaf-first) segments a and b share.
func commonLeafDepth(a, b []string) int {
	depth := 0
	for depth < len(a) && depth < len(b) && a[depth] == b[depth] {
		depth++
	}

	return depth
}
