package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the configuration file looked up when no path is given
const FileName = "ffibind.yaml"

// Config represents the ffibind tool configuration
type Config struct {
	Manifests []string     `mapstructure:"manifests"`
	Log       LogConfig    `mapstructure:"log"`
	Output    OutputConfig `mapstructure:"output"`

	// Dir is the directory of the config file; relative manifest paths
	// resolve against it. Empty when defaults were used.
	Dir string `mapstructure:"-"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig represents CLI output configuration
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Load loads the configuration from path, or from the nearest ffibind.yaml
// at or above the working directory when path is empty. Environment
// variables prefixed FFIBIND_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("manifests", []string{})
	v.SetDefault("log.level", "warn")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.color", true)

	v.SetEnvPrefix("FFIBIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		found, err := FindConfig()
		if err == nil {
			path = found
		}
	}

	dir := ""
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		dir = filepath.Dir(path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Dir = dir

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ManifestPaths returns the manifest paths with relative entries resolved
// against the config file directory
func (c *Config) ManifestPaths() []string {
	paths := make([]string, 0, len(c.Manifests))
	for _, p := range c.Manifests {
		if c.Dir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		paths = append(paths, p)
	}
	return paths
}

// ErrNotFound is returned by FindConfig when no config file exists
var ErrNotFound = errors.New("no " + FileName + " found")

// FindConfig walks up from the working directory looking for ffibind.yaml
func FindConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	switch cfg.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("output.format must be 'table' or 'json', got: %s", cfg.Output.Format)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", cfg.Log.Level)
	}

	for _, m := range cfg.Manifests {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("manifests must not contain empty paths")
		}
	}
	return nil
}
