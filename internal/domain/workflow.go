package domain

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"depmap.dev/pkg/depmap/internal/adapter"
	"depmap.dev/pkg/depmap/internal/controller"
	m "depmap.dev/pkg/depmap/internal/model"
)

// ResolveArgs contains the arguments for resolving a single reference.
type ResolveArgs struct {
	Reference         m.DependencyReference
	SearchPaths       []m.Path
	IncludeExtensions []string
	Strict            bool
}

// ScanArgs contains the arguments for scanning generated sources.
type ScanArgs struct {
	Paths             []m.Path
	Include           []string
	Exclude           []string
	SearchPaths       []m.Path
	IncludeExtensions []string
	Threads           int
	CacheSize         int
	Report            m.Path
	Strict            bool
}

// SegmentsArgs contains the arguments for listing hierarchy segments.
type SegmentsArgs struct {
	Path m.Path
}

// ViewArgs contains the arguments for viewing a saved report.
type ViewArgs struct {
	Report m.Path
}

// DiffArgs contains the arguments for comparing two saved reports.
type DiffArgs struct {
	Base m.Path
	Head m.Path
}

// Workflow defines the use cases exposed by the command line.
type Workflow interface {
	Resolve(ctx context.Context, args ResolveArgs) error
	Scan(ctx context.Context, args ScanArgs) error
	Segments(ctx context.Context, args SegmentsArgs) error
	View(ctx context.Context, args ViewArgs) error
	Diff(ctx context.Context, args DiffArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.GeneratedSourceAdapter
	adapter.ReportStore
	controller.UI
	oracle adapter.FileOracle
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	generatedAdapter adapter.GeneratedSourceAdapter,
	reportStore adapter.ReportStore,
	oracle adapter.FileOracle,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter:        fsAdapter,
		GeneratedSourceAdapter: generatedAdapter,
		ReportStore:            reportStore,
		UI:                     ui,
		oracle:                 oracle,
	}
}

func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) error {
	resolver := w.newResolver(w.oracle, args.SearchPaths, args.IncludeExtensions)

	resolution, err := resolver.Resolve(ctx, args.Reference)
	if err != nil {
		slog.Error("Failed to resolve dependency reference", "reference", args.Reference.Reference, "error", err)
		return fmt.Errorf("resolve %s: %w", args.Reference.Reference, err)
	}

	if err := w.DisplayResolution(ctx, resolution); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Strict && !resolution.Exists {
		return fmt.Errorf("%w: %s", ErrUnresolved, args.Reference.Reference)
	}

	return nil
}

func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	threads := args.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	files, err := w.Get(ctx, args.Paths, adapter.SourceFilter{Include: args.Include, Exclude: args.Exclude})
	if err != nil {
		slog.Error("Failed to discover sources", "error", err)
		return fmt.Errorf("get sources: %w", err)
	}

	sources, err := w.parseSources(ctx, files, threads)
	if err != nil {
		return fmt.Errorf("parse sources: %w", err)
	}

	oracle := w.oracle
	if args.CacheSize > 0 {
		cached, err := adapter.NewCachedFileOracle(oracle, args.CacheSize)
		if err != nil {
			return err
		}

		oracle = cached
	}

	entries, err := w.resolveAll(ctx, w.newResolver(oracle, args.SearchPaths, args.IncludeExtensions), sources, threads)
	if err != nil {
		return fmt.Errorf("resolve references: %w", err)
	}

	report := m.Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		SearchPaths: slices.Clone(args.SearchPaths),
		Entries:     entries,
	}

	summary := report.Summarize()
	slog.Info("Scan finished", "files", len(files), "generated", len(sources), "references", summary.Total, "unresolved", summary.Unresolved)

	if args.Report != "" {
		if err := w.SaveReport(ctx, args.Report, report); err != nil {
			slog.Error("Failed to save report", "path", args.Report, "error", err)
			return fmt.Errorf("save report: %w", err)
		}
	}

	if err := w.DisplayReport(ctx, report); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if args.Strict && summary.Unresolved > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnresolved, summary.Unresolved, summary.Total)
	}

	return nil
}

func (w *workflow) parseSources(ctx context.Context, files []m.Path, threads int) ([]m.GeneratedSource, error) {
	parsed := make([]m.GeneratedSource, len(files))
	generated := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, file := range files {
		group.Go(func() error {
			source, ok, err := w.Parse(groupCtx, file)
			if err != nil {
				return err
			}

			parsed[i] = source
			generated[i] = ok

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sources := make([]m.GeneratedSource, 0, len(files))

	for i, source := range parsed {
		if generated[i] {
			sources = append(sources, source)
		}
	}

	return sources, nil
}

func (w *workflow) resolveAll(ctx context.Context, resolver DependencyResolver, sources []m.GeneratedSource, threads int) ([]m.Resolution, error) {
	var refs []m.DependencyReference
	for _, source := range sources {
		refs = append(refs, source.References...)
	}

	entries := make([]m.Resolution, len(refs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, ref := range refs {
		group.Go(func() error {
			resolution, err := resolver.Resolve(groupCtx, ref)
			if err != nil {
				return fmt.Errorf("resolve %s from %s: %w", ref.Reference, ref.MainFile, err)
			}

			entries[i] = resolution

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("Failed to resolve references", "error", err)
		return nil, err
	}

	return entries, nil
}

func (w *workflow) Segments(ctx context.Context, args SegmentsArgs) error {
	if strings.TrimSpace(string(args.Path)) == "" {
		return &InvalidInputError{Field: "path", Reason: "must not be empty"}
	}

	return w.DisplaySegments(ctx, args.Path, Segments(args.Path))
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadReport(ctx, args.Report)
	if err != nil {
		slog.Error("Failed to load report", "path", args.Report, "error", err)
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayReport(ctx, report)
}

func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	base, err := w.LoadReport(ctx, args.Base)
	if err != nil {
		return fmt.Errorf("load base report: %w", err)
	}

	head, err := w.LoadReport(ctx, args.Head)
	if err != nil {
		return fmt.Errorf("load head report: %w", err)
	}

	baseLines, headLines := resolutionLines(base), resolutionLines(head)
	if slices.Equal(baseLines, headLines) {
		return w.DisplayDiff(ctx, "")
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        baseLines,
		B:        headLines,
		FromFile: string(args.Base),
		ToFile:   string(args.Head),
		Context:  1,
	})
	if err != nil {
		return fmt.Errorf("diff reports: %w", err)
	}

	return w.DisplayDiff(ctx, diff)
}

// resolutionLines renders one sorted line per entry so reports diff
// independently of scan order.
func resolutionLines(report m.Report) []string {
	lines := make([]string, 0, len(report.Entries))
	for _, entry := range report.Entries {
		lines = append(lines, fmt.Sprintf("%s: %s -> %s [%s]\n",
			entry.Reference.MainFile, entry.Reference.Reference, entry.Path, entry.Strategy))
	}

	slices.Sort(lines)

	return slices.Compact(lines)
}

func (w *workflow) newResolver(oracle adapter.FileOracle, searchPaths []m.Path, includeExtensions []string) DependencyResolver {
	opts := []ResolverOption{WithSearchPaths(searchPaths...)}
	if len(includeExtensions) > 0 {
		opts = append(opts, WithIncludeExtensions(includeExtensions...))
	}

	return NewDependencyResolver(oracle, opts...)
}
