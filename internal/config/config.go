// Package config loads lels settings from defaults, an optional YAML file
// and LELS_* environment variables, and validates them against a CUE
// schema.
//
// Configuration hierarchy (highest to lowest priority):
//
//  1. Environment variables (LELS_MAX_PROBLEMS, LELS_LOG_LEVEL, ...)
//  2. Config file (--config, else ./.lels.yaml, else ~/.lels/config.yaml)
//  3. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/roach88/lels/internal/analysis"
	"github.com/roach88/lels/internal/complete"
	"github.com/roach88/lels/internal/validate"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LELS"

// Config holds every setting.
type Config struct {
	MaxProblems      int           `mapstructure:"max_problems" yaml:"max_problems" json:"max_problems"`
	CompletionLimit  int           `mapstructure:"completion_limit" yaml:"completion_limit" json:"completion_limit"`
	TypeChecking     bool          `mapstructure:"type_checking" yaml:"type_checking" json:"type_checking"`
	BuiltinTemplates []string      `mapstructure:"builtin_templates" yaml:"builtin_templates" json:"builtin_templates"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`
	Log              LogConfig     `mapstructure:"log" yaml:"log" json:"log"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-" json:"-"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`    // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format" json:"format"` // json, console
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		MaxProblems:      validate.DefaultMaxProblems,
		CompletionLimit:  complete.DefaultLimit,
		TypeChecking:     false,
		BuiltinTemplates: append([]string(nil), analysis.DefaultBuiltins...),
		CacheTTL:         10 * time.Minute,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// AnalysisOptions converts the settings used by an analysis pass.
func (c Config) AnalysisOptions() analysis.Options {
	builtins := c.BuiltinTemplates
	if builtins == nil {
		builtins = []string{}
	}
	return analysis.Options{
		Builtins:     builtins,
		TypeChecking: c.TypeChecking,
	}
}

// Load reads the configuration. An explicit path must exist; otherwise the
// first of ./.lels.yaml and ~/.lels/config.yaml that exists is used. The
// result is validated before it is returned.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = discover()
	} else if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("max_problems", d.MaxProblems)
	v.SetDefault("completion_limit", d.CompletionLimit)
	v.SetDefault("type_checking", d.TypeChecking)
	v.SetDefault("builtin_templates", d.BuiltinTemplates)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func discover() string {
	candidates := []string{".lels.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".lels", "config.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}
