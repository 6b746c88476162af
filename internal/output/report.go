package output

import (
	"encoding/json"
	"time"

	"github.com/quantmind-br/motionscan/internal/manifest"
	"github.com/quantmind-br/motionscan/internal/utils"
)

// Report summarizes a run for later inspection
type Report struct {
	Root        string          `json:"root"`
	Output      string          `json:"output"`
	GeneratedAt time.Time       `json:"generated_at"`
	Duration    string          `json:"duration"`
	Candidates  int             `json:"candidates"`
	Entries     int             `json:"entries"`
	Collisions  int             `json:"collisions"`
	Skipped     []SkippedRecord `json:"skipped"`
}

// SkippedRecord is one file that produced no entry
type SkippedRecord struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

// ReportOptions contains options for building a Report
type ReportOptions struct {
	Root     string
	Output   string
	Elapsed  time.Duration
	Finished time.Time
}

// NewReport builds a Report from a build result
func NewReport(res *manifest.Result, opts ReportOptions) *Report {
	finished := opts.Finished
	if finished.IsZero() {
		finished = time.Now()
	}

	r := &Report{
		Root:        opts.Root,
		Output:      opts.Output,
		GeneratedAt: finished.UTC(),
		Duration:    opts.Elapsed.Round(time.Millisecond).String(),
		Skipped:     make([]SkippedRecord, 0),
	}
	if res == nil {
		return r
	}

	r.Candidates = res.Candidates
	r.Collisions = res.Collisions
	if res.Manifest != nil {
		r.Entries = res.Manifest.Len()
	}
	for _, s := range res.Skipped {
		rec := SkippedRecord{Path: s.Path, Reason: s.Reason}
		if s.Err != nil {
			rec.Error = s.Err.Error()
		}
		r.Skipped = append(r.Skipped, rec)
	}
	return r
}

// WriteReport writes the report as indented JSON
func WriteReport(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, append(data, '\n'), 0644)
}
