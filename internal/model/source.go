// Package model defines the data structures for dependency path resolution.
package model

// Path represents a file system path.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// GeneratedSource represents a compiled-extension source file (e.g. a C file
// generated by Cython) together with the dependency references it records.
type GeneratedSource struct {
	File       Path
	Module     string
	References []DependencyReference
}
