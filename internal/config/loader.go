package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// AppName is used for the config file name, search directories and env prefix.
const AppName = "keysync"

// configSearchPaths returns the paths to search for config files in order of precedence
// (later paths have higher priority in Viper)
func configSearchPaths() []string {
	paths := []string{}

	// System-wide (lowest priority)
	paths = append(paths, filepath.Join("/etc", AppName))

	// User-specific
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName))
	}

	// Current directory (highest priority for files)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}

	return paths
}

// UserConfigDir returns the user-specific config directory
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName), nil
}

// New creates and configures a Viper instance with search paths, env
// binding and defaults. Callers may bind flags on it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName(AppName)
	v.SetConfigType("yaml") // default, but will auto-detect

	for _, path := range configSearchPaths() {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v, DefaultConfig())

	return v
}

// Load reads the configuration into a Config. cfgFile overrides the search
// paths when non-empty. A missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values that cannot be defaulted sensibly.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scan.CallName) == "" {
		return fmt.Errorf("scan.call_name must not be empty")
	}
	if strings.TrimSpace(c.Hooks.Hook) == "" || strings.TrimSpace(c.Hooks.Module) == "" {
		return fmt.Errorf("hooks.hook and hooks.module must not be empty")
	}
	if strings.TrimSpace(c.Hooks.Member) == "" {
		return fmt.Errorf("hooks.member must not be empty")
	}
	if c.LocaleFile == "" {
		return fmt.Errorf("locale_file must not be empty")
	}
	return nil
}

// setViperDefaults sets default values in Viper from a config struct
func setViperDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("log.output", c.Log.Output)
	v.SetDefault("log.file_path", c.Log.FilePath)
	v.SetDefault("log.max_size_mb", c.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", c.Log.MaxBackups)
	v.SetDefault("log.max_age_days", c.Log.MaxAgeDays)
	v.SetDefault("log.enable_caller", c.Log.EnableCaller)
	v.SetDefault("log.no_color", c.Log.NoColor)
	v.SetDefault("project_dir", c.ProjectDir)
	v.SetDefault("locale_file", c.LocaleFile)
	v.SetDefault("scan.call_name", c.Scan.CallName)
	v.SetDefault("scan.ignore", c.Scan.Ignore)
	v.SetDefault("hooks.module", c.Hooks.Module)
	v.SetDefault("hooks.hook", c.Hooks.Hook)
	v.SetDefault("hooks.member", c.Hooks.Member)
	v.SetDefault("hooks.extensions", c.Hooks.Extensions)
	v.SetDefault("locale.strict", c.Locale.Strict)
}

// NewViperFromConfig creates a viper instance populated with values from a config struct
func NewViperFromConfig(c *Config) *viper.Viper {
	v := viper.New()

	v.Set("log.level", c.Log.Level)
	v.Set("log.format", c.Log.Format)
	v.Set("log.output", c.Log.Output)
	v.Set("log.file_path", c.Log.FilePath)
	v.Set("log.max_size_mb", c.Log.MaxSizeMB)
	v.Set("log.max_backups", c.Log.MaxBackups)
	v.Set("log.max_age_days", c.Log.MaxAgeDays)
	v.Set("log.enable_caller", c.Log.EnableCaller)
	v.Set("log.no_color", c.Log.NoColor)
	v.Set("project_dir", c.ProjectDir)
	v.Set("locale_file", c.LocaleFile)
	v.Set("scan.call_name", c.Scan.CallName)
	v.Set("scan.ignore", c.Scan.Ignore)
	v.Set("hooks.module", c.Hooks.Module)
	v.Set("hooks.hook", c.Hooks.Hook)
	v.Set("hooks.member", c.Hooks.Member)
	v.Set("hooks.extensions", c.Hooks.Extensions)
	v.Set("locale.strict", c.Locale.Strict)

	return v
}
