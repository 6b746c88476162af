package output

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quantmind-br/motionscan/internal/domain"
	"github.com/quantmind-br/motionscan/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManifest() *manifest.Manifest {
	d := 3.0
	return &manifest.Manifest{Motions: []manifest.Entry{
		manifest.NewEntry("/data/walk.motion", &d, 30, 0),
		manifest.NewEntry("/data/run.motion", nil, 120, 1),
	}}
}

// TestNewWriter tests creating a new writer
func TestNewWriter(t *testing.T) {
	tests := []struct {
		name  string
		opts  WriterOptions
		check func(t *testing.T, w *Writer)
	}{
		{
			name: "yaml output",
			opts: WriterOptions{Path: "out/motions.yaml"},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "out/motions.yaml", w.Path())
				assert.Equal(t, FormatYAML, w.format)
				assert.False(t, w.dryRun)
				assert.Equal(t, os.Stdout, w.out)
			},
		},
		{
			name: "json output",
			opts: WriterOptions{Path: "out/motions.JSON", DryRun: true},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, FormatJSON, w.format)
				assert.True(t, w.dryRun)
			},
		},
		{
			name: "unknown extension is yaml",
			opts: WriterOptions{Path: "out/motions.txt"},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, FormatYAML, w.format)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewWriter(tt.opts))
		})
	}
}

// TestWriter_Write tests writing a manifest
func TestWriter_Write(t *testing.T) {
	t.Run("writes yaml and creates parents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "motions.yaml")
		w := NewWriter(WriterOptions{Path: path})

		require.NoError(t, w.Write(context.Background(), sampleManifest()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "motions:\n  - file: /data/walk.motion\n    fps: 30.0\n    weight: 1.0\n    idx: 0\n")
		assert.Contains(t, content, "end: 3.0")
		assert.Contains(t, content, "fps: 120.0")

		loaded, err := manifest.NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, sampleManifest(), loaded)
	})

	t.Run("writes json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "motions.json")
		w := NewWriter(WriterOptions{Path: path})

		require.NoError(t, w.Write(context.Background(), sampleManifest()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
		assert.Contains(t, string(data), `"fps": 30.0`)

		loaded, err := manifest.NewLoader().Load(path)
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.Len())
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "motions.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, NewWriter(WriterOptions{Path: path}).Write(context.Background(), sampleManifest()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, "old", string(data))
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "motions.yaml")

		require.NoError(t, NewWriter(WriterOptions{Path: path}).Write(context.Background(), sampleManifest()))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "motions.yaml", entries[0].Name())
	})

	t.Run("empty manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "motions.yaml")
		require.NoError(t, NewWriter(WriterOptions{Path: path}).Write(context.Background(), &manifest.Manifest{}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "motions: []\n", string(data))
	})
}

// TestWriter_DryRun tests that a dry run prints instead of writing
func TestWriter_DryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motions.yaml")
	var buf bytes.Buffer
	w := NewWriter(WriterOptions{Path: path, DryRun: true, Out: &buf})

	require.NoError(t, w.Write(context.Background(), sampleManifest()))

	assert.Contains(t, buf.String(), "motions:")
	assert.Contains(t, buf.String(), "/data/walk.motion")
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// TestWriter_Errors tests fatal write failures
func TestWriter_Errors(t *testing.T) {
	t.Run("canceled context writes nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "motions.yaml")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewWriter(WriterOptions{Path: path}).Write(ctx, sampleManifest())
		assert.ErrorIs(t, err, context.Canceled)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("parent is a file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		err := NewWriter(WriterOptions{Path: filepath.Join(blocker, "motions.yaml")}).
			Write(context.Background(), sampleManifest())
		assert.ErrorIs(t, err, domain.ErrWriteFailed)
	})

	t.Run("no path", func(t *testing.T) {
		err := NewWriter(WriterOptions{}).Write(context.Background(), sampleManifest())
		assert.ErrorIs(t, err, domain.ErrWriteFailed)
	})

	t.Run("dry run writer fails", func(t *testing.T) {
		err := NewWriter(WriterOptions{DryRun: true, Out: failingWriter{}}).
			Write(context.Background(), sampleManifest())
		assert.ErrorIs(t, err, domain.ErrWriteFailed)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestEncode_UnknownFormat(t *testing.T) {
	_, err := Encode(sampleManifest(), Format("toml"))
	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	res := &manifest.Result{
		Manifest:   sampleManifest(),
		Candidates: 3,
		Collisions: 1,
		Skipped: []manifest.Skipped{{
			Path:   "/data/bad.npz",
			Reason: "missing_poses",
			Err:    domain.ErrMissingPoses,
		}},
	}
	finished := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	r := NewReport(res, ReportOptions{
		Root:     "/data",
		Output:   "/out/motions.yaml",
		Elapsed:  1500 * time.Millisecond,
		Finished: finished,
	})

	assert.Equal(t, 3, r.Candidates)
	assert.Equal(t, 2, r.Entries)
	assert.Equal(t, 1, r.Collisions)
	assert.Equal(t, "1.5s", r.Duration)
	assert.Equal(t, finished, r.GeneratedAt)
	require.Len(t, r.Skipped, 1)
	assert.Equal(t, "no poses field found", r.Skipped[0].Error)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "/data", back.Root)
	assert.Equal(t, "missing_poses", back.Skipped[0].Reason)
}

func TestReport_NilResult(t *testing.T) {
	r := NewReport(nil, ReportOptions{Root: "/data"})
	assert.NotNil(t, r.Skipped)
	assert.Equal(t, 0, r.Entries)
	assert.False(t, r.GeneratedAt.IsZero())
}
