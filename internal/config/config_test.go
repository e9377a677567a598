package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeshared/sitewinder/internal/foundation/errors"
)

// isolate points the .env lookup at an empty directory and clears overrides.
func isolate(t *testing.T) {
	t.Helper()
	prev := envFile
	envFile = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { envFile = prev })
	for _, key := range []string{EnvLogLevel, EnvLogFormat, EnvWorkers, EnvMetricsTextfile} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, root, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(body), 0o600))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, ".sgpage", cfg.Site.PageExtension)
	assert.Equal(t, ".sgtag", cfg.Site.TagExtension)
	assert.Equal(t, ".html", cfg.Site.OutputExtension)
	assert.Equal(t, 1, cfg.Build.Workers)
	assert.False(t, cfg.Build.VerifyLinks)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Metrics.Textfile)
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeConfig(t, root, `site:
  page_extension: page
  output_extension: .htm
build:
  workers: 4
  verify_links: true
  fail_on_broken_links: true
logging:
  level: DEBUG
  format: json
metrics:
  textfile: out.prom
`)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, ".page", cfg.Site.PageExtension)
	assert.Equal(t, ".sgtag", cfg.Site.TagExtension)
	assert.Equal(t, ".htm", cfg.Site.OutputExtension)
	assert.Equal(t, 4, cfg.Build.Workers)
	assert.True(t, cfg.Build.VerifyLinks)
	assert.True(t, cfg.Build.FailOnBrokenLinks)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "out.prom", cfg.Metrics.Textfile)
}

func TestLoadEmptyFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeConfig(t, root, "")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Build.Workers)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeConfig(t, root, "build:\n  wrokers: 2\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeConfig(t, root, "logging:\n  level: loud\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeConfig(t, root, "build:\n  fail_on_broken_links: true\n")

	cfg, err := Load(root)
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	cfg.Build.VerifyLinks = true
	require.NoError(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeConfig(t, root, "build:\n  workers: 2\nlogging:\n  level: info\n")
	t.Setenv(EnvWorkers, "8")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvMetricsTextfile, "/tmp/sw.prom")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Build.Workers)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/tmp/sw.prom", cfg.Metrics.Textfile)
}

func TestEnvInvalidWorkers(t *testing.T) {
	isolate(t)
	t.Setenv(EnvWorkers, "many")

	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestDotEnvFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.Unsetenv(EnvMetricsTextfile))
	t.Cleanup(func() { _ = os.Unsetenv(EnvMetricsTextfile) })
	require.NoError(t, os.WriteFile(envFile, []byte(EnvMetricsTextfile+"=from-dotenv.prom\n"), 0o600))

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.prom", cfg.Metrics.Textfile)
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	abs, err := ResolveRoot(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, abs)

	for name, root := range map[string]string{
		"empty":   "",
		"missing": filepath.Join(dir, "missing"),
		"file":    file,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ResolveRoot(root)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }},
		{"same template extensions", func(c *Config) { c.Site.TagExtension = c.Site.PageExtension }},
		{"output overwrites templates", func(c *Config) { c.Site.OutputExtension = c.Site.PageExtension }},
		{"fail without verify", func(c *Config) { c.Build.FailOnBrokenLinks = true }},
	}
	require.NoError(t, Default("/site").Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/site")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestLogLevelSlog(t *testing.T) {
	assert.Equal(t, "DEBUG", NormalizeLogLevel(" Debug ").Slog().String())
	assert.Equal(t, "WARN", NormalizeLogLevel("warning").Slog().String())
	assert.Equal(t, "INFO", NormalizeLogLevel("bogus").Slog().String())
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
}
