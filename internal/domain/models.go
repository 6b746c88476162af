package domain

import (
	"math"
	"time"
)

// Candidate is a file discovered during a scan that passed the name filter
type Candidate struct {
	Path    string    // absolute path
	Name    string    // base name
	Size    int64     // bytes
	ModTime time.Time // last modification
}

// Metadata is what a motion archive tells us about its timing
type Metadata struct {
	FrameRate  float64 `json:"frame_rate"`
	FrameCount int     `json:"frame_count"`
	Duration   float64 `json:"duration"`
}

// NewMetadata computes the duration for a clip.
// The caller must have checked frameRate with ValidFrameRate.
func NewMetadata(frameRate float64, frameCount int) *Metadata {
	return &Metadata{
		FrameRate:  frameRate,
		FrameCount: frameCount,
		Duration:   float64(frameCount) / frameRate,
	}
}

// ValidFrameRate reports whether fps can be used as a divisor
func ValidFrameRate(fps float64) bool {
	return fps > 0 && !math.IsInf(fps, 0) && !math.IsNaN(fps)
}
