// Package scanner finds motion archives under a directory tree.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quantmind-br/motionscan/internal/domain"
)

// Options controls which files a Scanner returns and in what order
type Options struct {
	// Extension a file name must end with, including the dot
	Extension string
	// ExcludeSuffixes rejects names ending with any of these
	ExcludeSuffixes []string
	// Sort orders candidates by absolute path; otherwise walk order is kept
	Sort bool
}

// DefaultOptions returns options matching AMASS-style dataset layouts
func DefaultOptions() Options {
	return Options{
		Extension:       ".npz",
		ExcludeSuffixes: []string{"stagei.npz", "shape.npz"},
		Sort:            true,
	}
}

// Ensure Scanner implements domain.Scanner
var _ domain.Scanner = (*Scanner)(nil)

// Scanner walks a directory tree and collects candidate files
type Scanner struct {
	opts Options
}

// New creates a scanner
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Matches reports whether a base name passes the filter
func (s *Scanner) Matches(name string) bool {
	if !strings.HasSuffix(name, s.opts.Extension) {
		return false
	}
	for _, suffix := range s.opts.ExcludeSuffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return false
		}
	}
	return true
}

// Scan walks root with unbounded depth and returns every matching file.
// A symlinked root is followed; candidate paths stay under root as given.
// Any error during the walk, including a missing root, aborts the scan.
func (s *Scanner) Scan(root string) ([]domain.Candidate, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", abs)
	}

	walkRoot, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}

	var files []domain.Candidate
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !s.Matches(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}

		fi, err := fileInfo(path, d)
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}

		files = append(files, domain.Candidate{
			Path:    filepath.Join(abs, rel),
			Name:    d.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.opts.Sort {
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	}
	return files, nil
}

// fileInfo describes the file a directory entry refers to. Symlinks report
// their target so the cache key changes when the target is rewritten; a
// dangling link keeps its own info and fails later at extraction.
func fileInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		if fi, err := os.Stat(path); err == nil {
			return fi, nil
		}
	}
	return d.Info()
}
