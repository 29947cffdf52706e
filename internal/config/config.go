package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"clipdeck/internal/app"
)

const CurrentVersion = 1

const (
	FallbackModeDirect = "direct"
	FallbackModeScript = "script"
)

// Config holds user preferences. Everything here is read-only to the command
// pipeline; only the settings surface writes it back.
type Config struct {
	Version               int         `json:"version" mapstructure:"version"`
	ExecutablePath        string      `json:"executable_path" mapstructure:"executable_path"`
	DefaultOutputDir      string      `json:"default_output_dir" mapstructure:"default_output_dir"`
	EnableFallbackPreview bool        `json:"enable_fallback_preview" mapstructure:"enable_fallback_preview"`
	FallbackPath          string      `json:"fallback_path" mapstructure:"fallback_path"`
	FallbackMode          string      `json:"fallback_mode" mapstructure:"fallback_mode"`
	Notifications         bool        `json:"notifications" mapstructure:"notifications"`
	NotificationTimeoutMS int         `json:"notification_timeout_ms" mapstructure:"notification_timeout_ms"`
	Theme                 ThemeConfig `json:"theme" mapstructure:"theme"`
}

type ThemeConfig struct {
	Active string `json:"active" mapstructure:"active"`
}

func Default() Config {
	return Config{
		Version:               CurrentVersion,
		ExecutablePath:        "clipaste",
		FallbackPath:          "pngpaste",
		FallbackMode:          FallbackModeDirect,
		Notifications:         true,
		NotificationTimeoutMS: 5000,
		Theme:                 ThemeConfig{Active: "default"},
	}
}

func EnsureDefaults(cfg *Config) {
	d := Default()
	if cfg.Version <= 0 {
		cfg.Version = CurrentVersion
	}
	if strings.TrimSpace(cfg.ExecutablePath) == "" {
		cfg.ExecutablePath = d.ExecutablePath
	}
	if strings.TrimSpace(cfg.FallbackPath) == "" {
		cfg.FallbackPath = d.FallbackPath
	}
	if cfg.FallbackMode != FallbackModeScript {
		cfg.FallbackMode = FallbackModeDirect
	}
	if cfg.NotificationTimeoutMS <= 0 {
		cfg.NotificationTimeoutMS = d.NotificationTimeoutMS
	}
	if cfg.Theme.Active == "" {
		cfg.Theme.Active = "default"
	}
	cfg.DefaultOutputDir = app.ExpandHome(strings.TrimSpace(cfg.DefaultOutputDir))
}

func Dir() (string, error) {
	return app.ConfigDir()
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func ThemesDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

func RecipesPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "recipes.json"), nil
}

// Load reads the config file, creating it with defaults on first use, and
// layers CLIPDECK_* environment variables on top.
func Load() (Config, error) {
	return LoadWith(viper.New())
}

// LoadWith is Load with a caller-supplied viper instance, so flags bound by the
// CLI take precedence over env and file values.
func LoadWith(v *viper.Viper) (Config, error) {
	cfgPath, err := Path()
	if err != nil {
		return Config{}, err
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := Save(Default()); err != nil {
			return Config{}, err
		}
	}
	setDefaults(v)
	v.SetConfigFile(cfgPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("CLIPDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	EnsureDefaults(&cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("executable_path", d.ExecutablePath)
	v.SetDefault("default_output_dir", d.DefaultOutputDir)
	v.SetDefault("enable_fallback_preview", d.EnableFallbackPreview)
	v.SetDefault("fallback_path", d.FallbackPath)
	v.SetDefault("fallback_mode", d.FallbackMode)
	v.SetDefault("notifications", d.Notifications)
	v.SetDefault("notification_timeout_ms", d.NotificationTimeoutMS)
	v.SetDefault("theme.active", d.Theme.Active)
}

func Save(cfg Config) error {
	EnsureDefaults(&cfg)
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, "config.json.tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, "config.json"))
}
