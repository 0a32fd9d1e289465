// Package config loads the navigation service configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/o0olele/gridnav-go/volume"
)

// Config holds everything the navigation service needs to start: the HTTP
// endpoints, the obstacle capacity, and the default volume layout served until
// a caller reconfigures it.
type Config struct {
	Listen         string   `yaml:"listen"`
	PprofListen    string   `yaml:"pprof_listen,omitempty"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	CacheSize      int      `yaml:"cache_size"`
	MaxObstacles   int      `yaml:"max_obstacles"`
	DataDir        string   `yaml:"data_dir"`

	Volume volume.Config       `yaml:"volume"`
	Probe  volume.ProbeOptions `yaml:"probe"`
}

// Load reads a config file, filling unset keys from the defaults. An empty
// path returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration the service runs with when no file is
// given.
func Defaults() Config {
	return Config{
		Listen:         ":8080",
		AllowedOrigins: []string{"*"},
		CacheSize:      128,
		MaxObstacles:   64,
		DataDir:        "data",
		Volume:         volume.DefaultConfig(),
		Probe:          volume.DefaultProbeOptions(),
	}
}

// Validate rejects configurations the service cannot start with. Volume
// warnings are not errors, the server reports them after startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen must not be empty")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0")
	}
	if c.MaxObstacles <= 0 {
		return fmt.Errorf("max_obstacles must be > 0")
	}
	if c.Probe.Radius < 0 {
		return fmt.Errorf("probe radius must be >= 0")
	}
	if c.Probe.HalfHeight < 0 {
		return fmt.Errorf("probe half_height must be >= 0")
	}
	if _, err := c.Volume.Validate(); err != nil {
		return err
	}
	return nil
}
