package utils

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Standard progress bar descriptions
const (
	DescScanning   = "Scanning"
	DescExtracting = "Extracting"
)

// NewProgressBar creates a consistently styled progress bar writing to w.
//
// Parameters:
//   - total: Total number of items. Use -1 for unknown totals (spinner mode).
//   - description: Text shown before the bar (DescScanning, DescExtracting).
//   - w: Destination; nil means os.Stderr so the bar never mixes with a
//     manifest written to stdout.
//
// Example:
//
//	bar := utils.NewProgressBar(len(candidates), utils.DescExtracting, nil)
//	defer bar.Finish()
//
//	for _, c := range candidates {
//	    // Process candidate
//	    bar.Add(1)
//	}
func NewProgressBar(total int, description string, w io.Writer) *progressbar.ProgressBar {
	if w == nil {
		w = os.Stderr
	}

	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(w, "\n")
		}),
	}

	if total < 0 {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}

// IsTerminal reports whether f is attached to an interactive terminal
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
