// Package config loads macaccent configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencode-ai/macaccent/internal/wal"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. MACACCENT_MATCH_POLICY.
const EnvPrefix = "MACACCENT"

// Config is the full application configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Match    MatchConfig    `mapstructure:"match"`
	Wal      WalConfig      `mapstructure:"wal"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DefaultsConfig describes how the macOS defaults tool is invoked.
type DefaultsConfig struct {
	Binary  string        `mapstructure:"binary"`
	Domain  string        `mapstructure:"domain"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MatchConfig selects the default matching policy.
type MatchConfig struct {
	Policy string `mapstructure:"policy"`
}

// WalConfig locates pywal output.
type WalConfig struct {
	ColorsPath string `mapstructure:"colors_path"`
}

// HistoryConfig controls the local change log.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Binary: "defaults",
			Domain: "Apple Global Domain",
		},
		Match: MatchConfig{
			Policy: "majority",
		},
		Wal: WalConfig{
			ColorsPath: wal.DefaultPath(),
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir(), "macaccent", "history.db"),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return filepath.Join(configDir(), "macaccent", "config.yaml")
}

// Load reads configuration from path (or the default location) and applies
// environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Wal.ColorsPath = expandPath(cfg.Wal.ColorsPath)
	cfg.History.Path = expandPath(cfg.History.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Defaults.Binary) == "" {
		return errors.New("defaults.binary is required")
	}
	if strings.TrimSpace(c.Defaults.Domain) == "" {
		return errors.New("defaults.domain is required")
	}
	if c.Defaults.Timeout < 0 {
		return errors.New("defaults.timeout must not be negative")
	}
	switch strings.ToLower(c.Match.Policy) {
	case "majority", "cumulative":
	default:
		return fmt.Errorf("match.policy must be majority or cumulative, got %q", c.Match.Policy)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path is required when history is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("defaults.binary", cfg.Defaults.Binary)
	v.SetDefault("defaults.domain", cfg.Defaults.Domain)
	v.SetDefault("defaults.timeout", cfg.Defaults.Timeout)
	v.SetDefault("match.policy", cfg.Match.Policy)
	v.SetDefault("wal.colors_path", cfg.Wal.ColorsPath)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.path", cfg.History.Path)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".config")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "share")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func expandPath(value string) string {
	value = strings.TrimSpace(value)
	if value == "~" {
		return homeDir()
	}
	if strings.HasPrefix(value, "~/") {
		return filepath.Join(homeDir(), value[2:])
	}
	return os.ExpandEnv(value)
}
