package adapter

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	m "depmap.dev/pkg/depmap/internal/model"
)

// ReportStore persists resolution reports.
type ReportStore interface {
	SaveReport(ctx context.Context, path m.Path, report m.Report) error
	LoadReport(ctx context.Context, path m.Path) (m.Report, error)
}

// YAMLReportStore stores reports as YAML documents on an afero filesystem.
type YAMLReportStore struct {
	fs afero.Fs
}

// NewReportStore constructs a ReportStore backed by fsys.
func NewReportStore(fsys afero.Fs) *YAMLReportStore {
	return &YAMLReportStore{fs: fsys}
}

// NewLocalReportStore constructs a ReportStore for the local disk.
func NewLocalReportStore() *YAMLReportStore {
	return NewReportStore(afero.NewOsFs())
}

// SaveReport writes report to path, creating parent directories as needed.
func (s *YAMLReportStore) SaveReport(ctx context.Context, path m.Path, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o750); err != nil {
			slog.Error("Failed to create report directory", "dir", dir, "error", err)
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := afero.WriteFile(s.fs, string(path), buf.Bytes(), 0o600); err != nil {
		slog.Error("Failed to write report", "path", path, "error", err)
		return fmt.Errorf("write report: %w", err)
	}

	slog.Debug("Saved report", "path", path, "entries", len(report.Entries))

	return nil
}

// LoadReport reads and decodes the report at path.
func (s *YAMLReportStore) LoadReport(ctx context.Context, path m.Path) (m.Report, error) {
	if err := ctx.Err(); err != nil {
		return m.Report{}, err
	}

	data, err := afero.ReadFile(s.fs, string(path))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
