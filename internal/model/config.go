package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// BackendConfig controls how the backend is reached.
type BackendConfig struct {
	// URL overrides the base URL read from URLFile when set.
	URL string `mapstructure:"url" yaml:"url"`

	// URLFile is a plain-text file holding the backend base URL.
	URLFile string `mapstructure:"url_file" yaml:"url_file"`

	// TimeoutSec bounds a single HTTP request.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// PollConfig controls the background refresh loop.
type PollConfig struct {
	// PeriodSec is the interval between fetch/probe cycles.
	PeriodSec int `mapstructure:"period_sec" yaml:"period_sec"`
}

// DataConfig controls where local state lives.
type DataConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig controls the application log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// PushConfig holds push registration settings.
type PushConfig struct {
	// Token is a push token to register instead of the stored one.
	Token string `mapstructure:"token" yaml:"token"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Backend BackendConfig `mapstructure:"backend" yaml:"backend"`
	Poll    PollConfig    `mapstructure:"poll" yaml:"poll"`
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Push    PushConfig    `mapstructure:"push" yaml:"push"`
}

// Default values.
const (
	DefaultURLFile    = "BackendURL.txt"
	DefaultTimeoutSec = 30
	DefaultPeriodSec  = 5
	DefaultLogLevel   = "info"
)

// DefaultDataDir returns ~/.config/tgift.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tgift")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tgift/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// DBPath returns the SQLite database location inside the data dir.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.Data.Dir, "tgift.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := DefaultDataDir()
	return &AppConfig{
		Backend: BackendConfig{
			URLFile:    DefaultURLFile,
			TimeoutSec: DefaultTimeoutSec,
		},
		Poll: PollConfig{PeriodSec: DefaultPeriodSec},
		Data: DataConfig{Dir: dir},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  filepath.Join(dir, "tgift.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with TGIFT_ override file values
// (e.g. TGIFT_POLL_PERIOD_SEC). A missing file yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	def := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("tgift")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values. Every key
	// needs a default for AutomaticEnv to see it during Unmarshal.
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.url_file", def.Backend.URLFile)
	v.SetDefault("backend.timeout_sec", def.Backend.TimeoutSec)
	v.SetDefault("poll.period_sec", def.Poll.PeriodSec)
	v.SetDefault("data.dir", def.Data.Dir)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("push.token", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Backend.TimeoutSec <= 0 {
		cfg.Backend.TimeoutSec = DefaultTimeoutSec
	}
	if cfg.Poll.PeriodSec <= 0 {
		cfg.Poll.PeriodSec = DefaultPeriodSec
	}
	if cfg.Backend.URLFile == "" {
		cfg.Backend.URLFile = DefaultURLFile
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = def.Data.Dir
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.Data.Dir, "tgift.log")
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("backend", cfg.Backend)
	v.Set("poll", cfg.Poll)
	v.Set("data", cfg.Data)
	v.Set("log", cfg.Log)
	v.Set("push", cfg.Push)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
