// Package config loads blockpad host settings from blockpad.yaml, BLOCKPAD_*
// environment variables and command line flags.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the root configuration structure
type Config struct {
	Document string        `mapstructure:"document"`
	ReadOnly bool          `mapstructure:"read_only"`
	Log      LogConfig     `mapstructure:"log"`
	Polish   PolishConfig  `mapstructure:"polish"`
	Toolbar  ToolbarConfig `mapstructure:"toolbar"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// PolishConfig configures the text improvement service. An empty endpoint
// disables polishing.
type PolishConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retries  int           `mapstructure:"retries"`
}

// ToolbarConfig holds floating toolbar preferences.
type ToolbarConfig struct {
	Offset int `mapstructure:"offset"`
}

// Enabled reports whether polishing is configured.
func (p PolishConfig) Enabled() bool { return strings.TrimSpace(p.Endpoint) != "" }

// New returns a viper instance with search paths, environment binding and
// defaults set up. Callers may bind flags before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("blockpad")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/blockpad")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BLOCKPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)
	return v
}

// Load reads the config file if one exists, unmarshals and validates. A
// missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration values
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Document) == "" {
		return errors.Wrap(ErrInvalid, "document cannot be empty")
	}

	level := strings.ToLower(cfg.Log.Level)
	ok := false
	for _, l := range validLevels {
		if level == l {
			ok = true
			break
		}
	}
	if !ok {
		return errors.Wrapf(ErrInvalid, "log.level must be one of %v, got %q", validLevels, cfg.Log.Level)
	}

	if cfg.Polish.Timeout < time.Second || cfg.Polish.Timeout > 5*time.Minute {
		return errors.Wrapf(ErrInvalid, "polish.timeout must be between 1s and 5m, got %v", cfg.Polish.Timeout)
	}
	if cfg.Polish.Retries < 0 || cfg.Polish.Retries > 10 {
		return errors.Wrapf(ErrInvalid, "polish.retries must be between 0 and 10, got %d", cfg.Polish.Retries)
	}
	if cfg.Polish.Enabled() && !strings.HasPrefix(cfg.Polish.Endpoint, "http://") && !strings.HasPrefix(cfg.Polish.Endpoint, "https://") {
		return errors.Wrapf(ErrInvalid, "polish.endpoint must be an http(s) URL, got %q", cfg.Polish.Endpoint)
	}

	if cfg.Toolbar.Offset < 0 {
		return errors.Wrapf(ErrInvalid, "toolbar.offset must be >= 0, got %d", cfg.Toolbar.Offset)
	}
	return nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("document", "blockpad.doc.yaml")
	v.SetDefault("read_only", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "$HOME/.local/state/blockpad/blockpad.log")

	v.SetDefault("polish.endpoint", "")
	v.SetDefault("polish.api_key", "")
	v.SetDefault("polish.model", "")
	v.SetDefault("polish.timeout", "30s")
	v.SetDefault("polish.retries", 2)

	v.SetDefault("toolbar.offset", 1)
}
