package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/lels/internal/analysis"
)

// isolate runs the test in an empty directory with an empty home so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1000, cfg.MaxProblems)
	assert.Equal(t, 3, cfg.CompletionLimit)
	assert.False(t, cfg.TypeChecking)
	assert.Equal(t, analysis.DefaultBuiltins, cfg.BuiltinTemplates)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, LogConfig{Level: "info", Format: "json"}, cfg.Log)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want, cfg)
	assert.Empty(t, cfg.Source)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `max_problems: 50
completion_limit: 5
type_checking: true
builtin_templates:
  - "*a person* is happy"
cache_ttl: 30s
log:
  level: debug
  format: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxProblems)
	assert.Equal(t, 5, cfg.CompletionLimit)
	assert.True(t, cfg.TypeChecking)
	assert.Equal(t, []string{"*a person* is happy"}, cfg.BuiltinTemplates)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, LogConfig{Level: "debug", Format: "console"}, cfg.Log)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_DiscoversWorkingDirectoryFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".lels.yaml", "max_problems: 7\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxProblems)
	assert.Equal(t, 3, cfg.CompletionLimit)
	assert.Equal(t, ".lels.yaml", cfg.Source)
}

func TestLoad_DiscoversHomeFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".lels", "config.yaml"), "completion_limit: 9\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.CompletionLimit)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolate(t)
	writeFile(t, ".lels.yaml", "max_problems: 7\n")
	t.Setenv("LELS_MAX_PROBLEMS", "11")
	t.Setenv("LELS_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.MaxProblems)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_InvalidValue(t *testing.T) {
	isolate(t)
	writeFile(t, ".lels.yaml", "log:\n  format: xml\n")

	_, err := Load("")
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Path, "format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero max problems", func(c *Config) { c.MaxProblems = 0 }, "max_problems"},
		{"completion limit too large", func(c *Config) { c.CompletionLimit = 1000 }, "completion_limit"},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, "cache_ttl"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Error(), tt.field)
		})
	}
}

func TestValidate_NilBuiltins(t *testing.T) {
	cfg := Default()
	cfg.BuiltinTemplates = nil
	assert.NoError(t, cfg.Validate())
	assert.NotNil(t, cfg.AnalysisOptions().Builtins)
}

func TestNewLogger(t *testing.T) {
	logger, err := LogConfig{Level: "info", Format: "console"}.NewLogger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = LogConfig{Level: "warn", Format: "json"}.NewLogger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = LogConfig{Level: "loud", Format: "json"}.NewLogger(false)
	assert.Error(t, err)
}
