// Package config resolves the site root and the optional sitewinder.yaml in it,
// layered with environment overrides.
package config

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// FileName is the optional configuration file looked up in the site root.
const FileName = "sitewinder.yaml"

// Config represents the generator configuration.
type Config struct {
	// Root is the absolute site root; it comes from the command line, never the file.
	Root    string        `yaml:"-"`
	Site    SiteConfig    `yaml:"site"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SiteConfig holds the file suffixes that drive discovery and output naming.
type SiteConfig struct {
	PageExtension   string `yaml:"page_extension"`
	TagExtension    string `yaml:"tag_extension"`
	OutputExtension string `yaml:"output_extension"`
}

// BuildConfig controls how pages are rendered and checked.
type BuildConfig struct {
	Workers           int  `yaml:"workers"` // 1 renders sequentially
	VerifyLinks       bool `yaml:"verify_links"`
	FailOnBrokenLinks bool `yaml:"fail_on_broken_links"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load resolves root and builds the configuration for it: defaults, then the
// optional sitewinder.yaml, then environment overrides (a .env file in the
// working directory included). The result is not validated: callers layer
// their own overrides first and then call Validate.
func Load(root string) (*Config, error) {
	abs, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := readFile(filepath.Join(abs, FileName), cfg); err != nil {
		return nil, err
	}
	cfg.Root = abs

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or overrides exist.
func Default(root string) *Config {
	cfg := &Config{Root: root}
	_ = applyDefaults(cfg)
	return cfg
}

// ResolveRoot makes root absolute and checks that it is an existing directory.
func ResolveRoot(root string) (string, error) {
	if root == "" {
		return "", errors.ConfigError("site root is required").Build()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "resolve site root").
			WithContext("root", root).
			Build()
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "site root does not exist").
			WithContext("root", abs).
			Build()
	}
	if !info.IsDir() {
		return "", errors.ConfigError("site root is not a directory").
			WithContext("root", abs).
			Build()
	}
	return abs, nil
}

func readFile(path string, cfg *Config) error {
	// #nosec G304 -- path is FileName inside the resolved site root.
	f, err := os.Open(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "open configuration file").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return errors.WrapError(err, errors.CategoryConfig, "parse configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
