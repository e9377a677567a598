package config

import "strings"

const (
	DefaultPageExtension   = ".sgpage"
	DefaultTagExtension    = ".sgtag"
	DefaultOutputExtension = ".html"
	DefaultWorkers         = 1
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier fills in the file suffixes.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Site.PageExtension = extensionOr(cfg.Site.PageExtension, DefaultPageExtension)
	cfg.Site.TagExtension = extensionOr(cfg.Site.TagExtension, DefaultTagExtension)
	cfg.Site.OutputExtension = extensionOr(cfg.Site.OutputExtension, DefaultOutputExtension)
	return nil
}

// extensionOr trims ext and adds a missing leading dot; empty becomes fallback.
func extensionOr(ext, fallback string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return fallback
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// BuildDefaultApplier handles Build configuration defaults.
type BuildDefaultApplier struct{}

func (b *BuildDefaultApplier) Domain() string { return "build" }

func (b *BuildDefaultApplier) ApplyDefaults(cfg *Config) error {
	// Zero means "not set"; negative values are rejected by Validate.
	if cfg.Build.Workers == 0 {
		cfg.Build.Workers = DefaultWorkers
	}
	return nil
}

// LoggingDefaultApplier normalizes the logging enums.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return err
	}
	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return err
	}
	cfg.Logging.Level = level
	cfg.Logging.Format = format
	return nil
}

var defaultAppliers = []DefaultApplier{
	&SiteDefaultApplier{},
	&BuildDefaultApplier{},
	&LoggingDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return wrapDomain(err, a.Domain())
		}
	}
	return nil
}
