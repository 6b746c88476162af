package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/motionscan/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Lists are edited as one item per line, durations as strings.
type ConfigValues struct {
	Extension       string
	ExcludeSuffixes string
	Sort            bool

	FrameRateKeys string
	PosesKey      string

	IdentifierExtension string
	StrictIdentifiers   bool

	OutputFile     string
	OutputReport   string
	OutputProgress bool

	CacheEnabled   bool
	CacheTTL       string
	CacheDirectory string

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		Extension:       cfg.Scan.Extension,
		ExcludeSuffixes: strings.Join(cfg.Scan.ExcludeSuffixes, "\n"),
		Sort:            cfg.Scan.Sort,

		FrameRateKeys: strings.Join(cfg.Extract.FrameRateKeys, "\n"),
		PosesKey:      cfg.Extract.PosesKey,

		IdentifierExtension: cfg.Manifest.IdentifierExtension,
		StrictIdentifiers:   cfg.Manifest.StrictIdentifiers,

		OutputFile:     cfg.Output.File,
		OutputReport:   cfg.Output.Report,
		OutputProgress: cfg.Output.Progress,

		CacheEnabled:   cfg.Cache.Enabled,
		CacheTTL:       formatDuration(cfg.Cache.TTL),
		CacheDirectory: cfg.Cache.Directory,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config.
// An empty exclude list means nothing is excluded; an empty key list
// falls back to the default frame rate keys.
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	cacheTTL, err := parseDurationOrDefault(v.CacheTTL, config.DefaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache_ttl: %w", err)
	}

	cfg := &config.Config{
		Scan: config.ScanConfig{
			Extension:       strings.TrimSpace(v.Extension),
			ExcludeSuffixes: splitLines(v.ExcludeSuffixes),
			Sort:            v.Sort,
		},
		Extract: config.ExtractConfig{
			FrameRateKeys: splitLines(v.FrameRateKeys),
			PosesKey:      strings.TrimSpace(v.PosesKey),
		},
		Manifest: config.ManifestConfig{
			IdentifierExtension: strings.TrimSpace(v.IdentifierExtension),
			StrictIdentifiers:   v.StrictIdentifiers,
		},
		Output: config.OutputConfig{
			File:     strings.TrimSpace(v.OutputFile),
			Progress: v.OutputProgress,
			Report:   strings.TrimSpace(v.OutputReport),
		},
		Cache: config.CacheConfig{
			Enabled:   v.CacheEnabled,
			TTL:       cacheTTL,
			Directory: strings.TrimSpace(v.CacheDirectory),
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}
	if cfg.Cache.Directory == "" {
		cfg.Cache.Directory = config.CacheDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitLines returns the trimmed non-blank lines of s, never nil
func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(strings.TrimSpace(s))
}
