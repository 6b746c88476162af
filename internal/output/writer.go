package output

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/motionscan/internal/domain"
	"github.com/quantmind-br/motionscan/internal/manifest"
	"github.com/quantmind-br/motionscan/internal/utils"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a path's extension
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Writer handles writing the manifest to the filesystem
type Writer struct {
	path   string
	format Format
	dryRun bool
	out    io.Writer
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Path   string
	DryRun bool
	// Out receives the document on a dry run, defaults to stdout
	Out io.Writer
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Writer{
		path:   opts.Path,
		format: FormatFor(opts.Path),
		dryRun: opts.DryRun,
		out:    out,
	}
}

// Path returns the output path
func (w *Writer) Path() string {
	return w.path
}

// Write serializes the manifest to the output path. The file is replaced
// atomically, so a failed write leaves any previous manifest intact.
func (w *Writer) Write(ctx context.Context, m *manifest.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(m, w.format)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrWriteFailed, err)
	}

	// Dry run - print instead
	if w.dryRun {
		if _, err := w.out.Write(data); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
		}
		return nil
	}

	if w.path == "" {
		return fmt.Errorf("%w: no output path", domain.ErrWriteFailed)
	}

	if err := utils.WriteFileAtomic(w.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrWriteFailed, w.path, err)
	}
	return nil
}

// Encode serializes a manifest. YAML uses a two-space indent and keeps
// the entry key order.
func Encode(m *manifest.Manifest, format Format) ([]byte, error) {
	if m == nil {
		m = &manifest.Manifest{}
	}
	if m.Motions == nil {
		m = &manifest.Manifest{Motions: []manifest.Entry{}}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
