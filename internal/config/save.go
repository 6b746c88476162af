package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/motionscan/internal/utils"
)

// MarshalYAML writes the TTL as a duration string so viper can read it back
func (c CacheConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Enabled   bool   `yaml:"enabled"`
		TTL       string `yaml:"ttl"`
		Directory string `yaml:"directory"`
	}{
		Enabled:   c.Enabled,
		TTL:       c.TTL.String(),
		Directory: c.Directory,
	}, nil
}

// Save writes cfg as YAML to path, creating parent directories.
// An empty path writes to ConfigFilePath().
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("save config: nil config")
	}
	if path == "" {
		path = ConfigFilePath()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
