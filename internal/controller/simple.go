package controller

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "depmap.dev/pkg/depmap/internal/model"
)

const noDifferencesMessage = "No differences."

// SimpleUI implements UI using cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayResolution prints the resolved path and how it was found.
func (s *SimpleUI) DisplayResolution(ctx context.Context, resolution m.Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s [%s]\n", resolution.Path, resolution.Strategy)

	if !resolution.Exists {
		s.warnf("warning: %s referenced from %s was not found\n", resolution.Reference.Reference, resolution.Reference.MainFile)
	}

	return nil
}

// DisplayReport prints every entry of the report as a table.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderReportTable(report))

	for _, entry := range report.Unresolved() {
		s.warnf("warning: %s referenced from %s was not found\n", entry.Reference.Reference, entry.Reference.MainFile)
	}

	return nil
}

// DisplaySegments prints one hierarchy segment per line, leaf first.
func (s *SimpleUI) DisplaySegments(ctx context.Context, _ m.Path, segments []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, segment := range segments {
		s.printf("%s\n", segment)
	}

	return nil
}

// DisplayDiff prints a unified diff between two reports.
func (s *SimpleUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("%s\n", noDifferencesMessage)
		return nil
	}

	s.printf("%s", diff)

	return nil
}

func renderReportTable(report m.Report) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Main File", "Reference", "Path", "Strategy"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, entry := range report.Entries {
		table.Append([]string{
			string(entry.Reference.MainFile),
			string(entry.Reference.Reference),
			string(entry.Path),
			entry.Strategy.String(),
		})
	}

	summary := report.Summarize()
	table.SetFooter([]string{
		fmt.Sprintf("Total %d", summary.Total),
		fmt.Sprintf("Resolved %d", summary.Resolved),
		fmt.Sprintf("Unresolved %d", summary.Unresolved),
		formatStrategyCounts(summary.ByStrategy),
	})

	table.Render()

	return tableBuffer.String()
}

func formatStrategyCounts(counts map[m.Strategy]int) string {
	strategies := make([]m.Strategy, 0, len(counts))
	for strategy := range counts {
		strategies = append(strategies, strategy)
	}

	slices.Sort(strategies)

	parts := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		parts = append(parts, fmt.Sprintf("%s=%d", strategy, counts[strategy]))
	}

	return strings.Join(parts, " ")
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.ErrOrStderr(), format, args...)
}
