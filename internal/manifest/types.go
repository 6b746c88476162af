package manifest

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quantmind-br/motionscan/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultWeight is the sampling weight given to every entry
const DefaultWeight = 1.0

// Manifest is the document handed to downstream motion loaders
type Manifest struct {
	Motions []Entry `yaml:"motions" json:"motions"`
}

// Entry describes one motion clip. Field order is the serialized key order.
type Entry struct {
	File       string      `yaml:"file" json:"file"`
	FPS        Float       `yaml:"fps" json:"fps"`
	Weight     Float       `yaml:"weight" json:"weight"`
	Idx        int         `yaml:"idx" json:"idx"`
	SubMotions []SubMotion `yaml:"sub_motions,omitempty" json:"sub_motions,omitempty"`
}

// SubMotion is a time range inside a clip
type SubMotion struct {
	Timings Timings `yaml:"timings" json:"timings"`
}

// Timings holds a range in seconds
type Timings struct {
	Start Float `yaml:"start" json:"start"`
	End   Float `yaml:"end" json:"end"`
}

// Float is a float64 that always serializes with a fractional part,
// so 30 is written as 30.0 and reads back as a float in any YAML loader.
type Float float64

// MarshalYAML implements yaml.Marshaler
func (f Float) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
		Value: formatFloat(float64(f)),
	}, nil
}

// MarshalJSON implements json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("cannot encode %v as JSON", v)
	}
	return []byte(formatFloat(v)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Float) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// NewEntry builds a manifest entry. A nil duration omits sub_motions.
func NewEntry(identifier string, duration *float64, fps float64, idx int) Entry {
	e := Entry{
		File:   identifier,
		FPS:    Float(fps),
		Weight: DefaultWeight,
		Idx:    idx,
	}
	if duration != nil {
		e.SubMotions = []SubMotion{{
			Timings: Timings{Start: 0, End: Float(*duration)},
		}}
	}
	return e
}

// Duration returns the end of the first sub-motion, if there is one
func (e Entry) Duration() (float64, bool) {
	if len(e.SubMotions) == 0 {
		return 0, false
	}
	return float64(e.SubMotions[0].Timings.End), true
}

// Len returns the number of entries
func (m *Manifest) Len() int {
	return len(m.Motions)
}

// Validate checks every entry of the manifest
func (m *Manifest) Validate() error {
	for i, e := range m.Motions {
		if strings.TrimSpace(e.File) == "" {
			return fmt.Errorf("motion %d: %w", i, ErrEmptyFile)
		}
		if !domain.ValidFrameRate(float64(e.FPS)) {
			return fmt.Errorf("motion %d (%s): %w: %v", i, e.File, ErrInvalidFPS, float64(e.FPS))
		}
		if e.Weight != DefaultWeight {
			return domain.NewValidationError(
				fmt.Sprintf("motions[%d].weight", i),
				fmt.Sprintf("must be %.1f, got %v", DefaultWeight, float64(e.Weight)),
			)
		}
		if e.Idx != i {
			return fmt.Errorf("motion %d (%s): %w: got idx %d", i, e.File, ErrIndexGap, e.Idx)
		}
		for j, sub := range e.SubMotions {
			start, end := float64(sub.Timings.Start), float64(sub.Timings.End)
			if math.IsNaN(start) || math.IsNaN(end) || start < 0 || end < start {
				return fmt.Errorf("motion %d sub_motion %d: %w: [%v, %v]", i, j, ErrInvalidTiming, start, end)
			}
		}
	}
	return nil
}
