package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SupportedFormats lists the config file formats we support
var SupportedFormats = []string{"yaml", "toml", "json"}

// GenerateConfig writes the default configuration into dir as keysync.<format>.
// It refuses to overwrite an existing file.
func GenerateConfig(dir, format string) (string, error) {
	if !isValidFormat(format) {
		return "", fmt.Errorf("unsupported format %q, supported: %v", format, SupportedFormats)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(dir, fmt.Sprintf("%s.%s", AppName, format))

	if _, err := os.Stat(configPath); err == nil {
		return configPath, fmt.Errorf("config file already exists: %s", configPath)
	}

	v := NewViperFromConfig(DefaultConfig())
	v.SetConfigType(format)

	if err := v.WriteConfigAs(configPath); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}

// FindConfigFile returns the first existing config file in the search
// paths, highest priority first, or "" if there is none.
func FindConfigFile() string {
	paths := configSearchPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		for _, ext := range SupportedFormats {
			path := filepath.Join(paths[i], fmt.Sprintf("%s.%s", AppName, ext))
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

func isValidFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}
