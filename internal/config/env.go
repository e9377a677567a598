package config

import (
	stderrors "errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// Environment variables that override the configuration file.
const (
	EnvLogLevel        = "SITEWINDER_LOG_LEVEL"
	EnvLogFormat       = "SITEWINDER_LOG_FORMAT"
	EnvWorkers         = "SITEWINDER_WORKERS"
	EnvMetricsTextfile = "SITEWINDER_METRICS_TEXTFILE"
)

// envFile is read from the working directory; variables already set win.
var envFile = ".env"

func loadEnvFile() error {
	if _, err := os.Stat(envFile); stderrors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "load environment file").
			WithContext("path", envFile).
			Build()
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.Logging.Level = LogLevel(v)
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.Logging.Format = LogFormat(v)
	}
	if v, ok := lookup(EnvMetricsTextfile); ok {
		cfg.Metrics.Textfile = v
	}
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "invalid worker count").
				WithContext("env", EnvWorkers).
				WithContext("value", v).
				Build()
		}
		cfg.Build.Workers = n
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
