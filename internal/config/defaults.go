package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Scan defaults
	DefaultExtension = ".npz"
	DefaultSort      = true

	// Extract defaults
	DefaultPosesKey = "poses"

	// Manifest defaults
	DefaultIdentifierExtension = ".motion"

	// Output defaults
	DefaultProgress = true

	// Cache defaults
	DefaultCacheEnabled = false
	DefaultCacheTTL     = 7 * 24 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultExcludeSuffixes are auxiliary archives that carry no motion:
// per-subject shape and stage-I fitting results.
var DefaultExcludeSuffixes = []string{
	"stagei.npz",
	"shape.npz",
}

// DefaultFrameRateKeys are checked in order
var DefaultFrameRateKeys = []string{
	"mocap_framerate",
	"mocap_frame_rate",
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".motionscan"
	}
	return filepath.Join(home, ".motionscan")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Extension:       DefaultExtension,
			ExcludeSuffixes: append([]string(nil), DefaultExcludeSuffixes...),
			Sort:            DefaultSort,
		},
		Extract: ExtractConfig{
			FrameRateKeys: append([]string(nil), DefaultFrameRateKeys...),
			PosesKey:      DefaultPosesKey,
		},
		Manifest: ManifestConfig{
			IdentifierExtension: DefaultIdentifierExtension,
			StrictIdentifiers:   false,
		},
		Output: OutputConfig{
			Progress: DefaultProgress,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
