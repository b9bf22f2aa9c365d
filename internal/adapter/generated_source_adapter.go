package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	m "depmap.dev/pkg/depmap/internal/model"
)

const (
	generatedHeader = "/* Generated by Cython "
	headerProbeSize = 30

	metadataBegin = "/* BEGIN: Cython Metadata"
	metadataEnd   = "END: Cython Metadata */"

	maxLineSize = 1024 * 1024
)

// sourceMarkerPattern matches the comments a generated file carries before
// each translated source line, e.g. `/* "foo/bar.pyx":42`.
var sourceMarkerPattern = regexp.MustCompile(`^ */[*] +"(.*)":([0-9]+)$`)

// GeneratedSourceAdapter extracts dependency references from compiled
// extension sources so the domain layer stays independent of their format.
type GeneratedSourceAdapter interface {
	// Parse reads path and returns its dependency references. The boolean is
	// false when the file is not a generated source and should be skipped.
	Parse(ctx context.Context, path m.Path) (m.GeneratedSource, bool, error)
}

// CythonSourceAdapter parses C/C++ files produced by Cython.
type CythonSourceAdapter struct {
	fs afero.Fs
}

// NewGeneratedSourceAdapter constructs a GeneratedSourceAdapter backed by fsys.
func NewGeneratedSourceAdapter(fsys afero.Fs) *CythonSourceAdapter {
	return &CythonSourceAdapter{fs: fsys}
}

// NewLocalGeneratedSourceAdapter constructs a GeneratedSourceAdapter for the local disk.
func NewLocalGeneratedSourceAdapter() *CythonSourceAdapter {
	return NewGeneratedSourceAdapter(afero.NewOsFs())
}

type cythonMetadata struct {
	ModuleName string `json:"module_name"`
}

// Parse scans the marker comments of a generated file.
func (a *CythonSourceAdapter) Parse(ctx context.Context, path m.Path) (m.GeneratedSource, bool, error) {
	if err := ctx.Err(); err != nil {
		return m.GeneratedSource{}, false, err
	}

	file, err := a.fs.Open(string(path))
	if err != nil {
		return m.GeneratedSource{}, false, fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	reader := bufio.NewReader(file)

	probe, err := reader.Peek(headerProbeSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return m.GeneratedSource{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	if !bytes.Contains(probe, []byte(generatedHeader)) {
		slog.Debug("Skipping non-generated source", "path", path)
		return m.GeneratedSource{}, false, nil
	}

	source := m.GeneratedSource{File: path}

	if err := a.scan(ctx, reader, &source); err != nil {
		return m.GeneratedSource{}, false, fmt.Errorf("scan %s: %w", path, err)
	}

	slog.Debug("Parsed generated source", "path", path, "module", source.Module, "references", len(source.References))

	return source, true, nil
}

func (a *CythonSourceAdapter) scan(ctx context.Context, r io.Reader, source *m.GeneratedSource) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	index := map[m.Path]int{}
	lines := map[m.Path]map[int]bool{}

	var (
		inMetadata bool
		metadata   strings.Builder
	)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case inMetadata:
			if strings.HasPrefix(line, metadataEnd) {
				inMetadata = false
				source.Module = parseModuleName(metadata.String())

				continue
			}

			metadata.WriteString(line)
			metadata.WriteByte('\n')

			continue
		case strings.HasPrefix(line, metadataBegin):
			inMetadata = true
			continue
		}

		match := sourceMarkerPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		ref := m.Path(match[1])

		lineNo, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}

		if _, ok := index[ref]; !ok {
			index[ref] = len(source.References)
			lines[ref] = map[int]bool{}
			source.References = append(source.References, m.DependencyReference{
				MainFile:     source.File,
				Reference:    ref,
				RelativeHint: true,
			})
		}

		if !lines[ref][lineNo] {
			lines[ref][lineNo] = true
			source.References[index[ref]].Lines++
		}
	}

	return scanner.Err()
}

func parseModuleName(raw string) string {
	var meta cythonMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		slog.Warn("Ignoring malformed Cython metadata", "error", err)
		return ""
	}

	return meta.ModuleName
}
