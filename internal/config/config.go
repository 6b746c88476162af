package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	Scan     ScanConfig     `mapstructure:"scan" yaml:"scan"`
	Extract  ExtractConfig  `mapstructure:"extract" yaml:"extract"`
	Manifest ManifestConfig `mapstructure:"manifest" yaml:"manifest"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// ScanConfig controls which files are picked up
type ScanConfig struct {
	Extension       string   `mapstructure:"extension" yaml:"extension"`
	ExcludeSuffixes []string `mapstructure:"exclude_suffixes" yaml:"exclude_suffixes"`
	Sort            bool     `mapstructure:"sort" yaml:"sort"`
}

// ExtractConfig names the archive fields metadata is read from
type ExtractConfig struct {
	FrameRateKeys []string `mapstructure:"frame_rate_keys" yaml:"frame_rate_keys"`
	PosesKey      string   `mapstructure:"poses_key" yaml:"poses_key"`
}

// ManifestConfig contains manifest entry settings
type ManifestConfig struct {
	IdentifierExtension string `mapstructure:"identifier_extension" yaml:"identifier_extension"`
	StrictIdentifiers   bool   `mapstructure:"strict_identifiers" yaml:"strict_identifiers"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	File     string `mapstructure:"file" yaml:"file"`
	Progress bool   `mapstructure:"progress" yaml:"progress"`
	// Report is an optional path for a JSON run report
	Report string `mapstructure:"report" yaml:"report"`
}

// CacheConfig contains metadata cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, filling in defaults for empty values
func (c *Config) Validate() error {
	if c.Scan.Extension == "" {
		c.Scan.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Scan.Extension, ".") {
		return fmt.Errorf("invalid scan.extension %q: must start with '.'", c.Scan.Extension)
	}
	if c.Scan.ExcludeSuffixes == nil {
		c.Scan.ExcludeSuffixes = append([]string(nil), DefaultExcludeSuffixes...)
	}

	if len(c.Extract.FrameRateKeys) == 0 {
		c.Extract.FrameRateKeys = append([]string(nil), DefaultFrameRateKeys...)
	}
	for i, k := range c.Extract.FrameRateKeys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("invalid extract.frame_rate_keys[%d]: empty key", i)
		}
	}
	if c.Extract.PosesKey == "" {
		c.Extract.PosesKey = DefaultPosesKey
	}

	if c.Manifest.IdentifierExtension == "" {
		c.Manifest.IdentifierExtension = DefaultIdentifierExtension
	}
	if !strings.HasPrefix(c.Manifest.IdentifierExtension, ".") {
		return fmt.Errorf("invalid manifest.identifier_extension %q: must start with '.'", c.Manifest.IdentifierExtension)
	}

	if c.Cache.TTL < 0 {
		c.Cache.TTL = DefaultCacheTTL
	}

	switch c.Logging.Level {
	case "":
		c.Logging.Level = DefaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "":
		c.Logging.Format = DefaultLogFormat
	case "pretty", "json":
	default:
		return fmt.Errorf("invalid logging.format %q", c.Logging.Format)
	}
	return nil
}
