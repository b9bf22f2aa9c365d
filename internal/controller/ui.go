// Package controller provides output adapters for displaying dependency resolutions.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "depmap.dev/pkg/depmap/internal/model"
)

// UI defines the interface for presenting workflow results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayResolution(ctx context.Context, resolution m.Resolution) error
	DisplayReport(ctx context.Context, report m.Report) error
	DisplaySegments(ctx context.Context, path m.Path, segments []string) error
	DisplayDiff(ctx context.Context, diff string) error
}

// NewUI returns a TUI when attached to a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
