package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "XSUPER_"

// Configuration represents the xsuper CLI configuration
type Configuration struct {
	ElevationHandler string   `koanf:"elevation_handler"`
	Selectors        []string `koanf:"selectors" validate:"required,min=1,dive,required"`
	PreviewWindow    string   `koanf:"preview_window" validate:"required"`
	LogLevel         string   `koanf:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFile          string   `koanf:"log_file"`
	ShowProgress     bool     `koanf:"show_progress"` // Show a spinner while package lists load
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if globalPath := GlobalConfigPath(); globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// An explicitly named config file must exist.
	if localConfigPath != "" {
		if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", localConfigPath, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.LogFile = expandHomePath(cfg.LogFile)
	return &cfg, nil
}

// GlobalConfigPath is $XDG_CONFIG_HOME/xsuper/config.json, falling back to
// ~/.config. Empty when neither can be determined.
func GlobalConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "xsuper", "config.json")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "xsuper", "config.json")
}

// envTransform converts environment variables to config keys
// Example: XSUPER_LOG_LEVEL=debug -> log_level; XSUPER_SELECTORS="sk fzf" -> [sk fzf]
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	if key == "selectors" {
		return key, strings.Fields(strings.ReplaceAll(value, ",", " "))
	}
	return key, value
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
