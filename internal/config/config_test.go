package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// isolateHome points the user config directory at an empty temp dir so a
// developer's own keysync config cannot leak into the tests.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

// ==================== Types Tests ====================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "pretty" {
		t.Errorf("expected log format 'pretty', got %q", cfg.Log.Format)
	}
	if cfg.Log.Output != "stderr" {
		t.Errorf("expected log output 'stderr', got %q", cfg.Log.Output)
	}
	if cfg.ProjectDir != "." {
		t.Errorf("expected project dir '.', got %q", cfg.ProjectDir)
	}
	if cfg.LocaleFile != "locales/en.json" {
		t.Errorf("expected locale file 'locales/en.json', got %q", cfg.LocaleFile)
	}
	if cfg.Scan.CallName != "t" {
		t.Errorf("expected call name 't', got %q", cfg.Scan.CallName)
	}
	if len(cfg.Scan.Ignore) != 0 {
		t.Errorf("expected no ignore patterns, got %v", cfg.Scan.Ignore)
	}
	if cfg.Hooks.Module != "react-i18next" || cfg.Hooks.Hook != "useTranslation" || cfg.Hooks.Member != "t" {
		t.Errorf("unexpected hooks defaults: %+v", cfg.Hooks)
	}
	if diff := cmp.Diff([]string{".ts", ".tsx", ".js", ".jsx"}, cfg.Hooks.Extensions); diff != "" {
		t.Errorf("extensions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Locale.Strict {
		t.Error("expected strict mode to be off by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty call name", func(c *Config) { c.Scan.CallName = " " }, true},
		{"empty hook", func(c *Config) { c.Hooks.Hook = "" }, true},
		{"empty module", func(c *Config) { c.Hooks.Module = "" }, true},
		{"empty member", func(c *Config) { c.Hooks.Member = "" }, true},
		{"empty locale file", func(c *Config) { c.LocaleFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ==================== Generator Tests ====================

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"yaml", true},
		{"toml", true},
		{"json", true},
		{"ini", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			if got := isValidFormat(tt.format); got != tt.valid {
				t.Errorf("isValidFormat(%q) = %v, want %v", tt.format, got, tt.valid)
			}
		})
	}
}

func TestGenerateConfig_InvalidFormat(t *testing.T) {
	_, err := GenerateConfig(t.TempDir(), "ini")
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestGenerateConfig_RoundTrip(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()

	path, err := GenerateConfig(dir, "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "keysync.yaml") {
		t.Errorf("unexpected config path %q", path)
	}

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("failed to load generated config: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("generated config does not match defaults (-want +got):\n%s", diff)
	}
}

func TestGenerateConfig_AlreadyExists(t *testing.T) {
	dir := t.TempDir()

	if _, err := GenerateConfig(dir, "yaml"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := GenerateConfig(dir, "yaml"); err == nil {
		t.Error("expected error when config already exists")
	}
}

// ==================== Loader Tests ====================

func TestConfigSearchPaths(t *testing.T) {
	home := isolateHome(t)

	paths := configSearchPaths()
	if len(paths) < 2 {
		t.Fatalf("expected at least 2 search paths, got %d", len(paths))
	}
	if paths[0] != filepath.Join("/etc", AppName) {
		t.Errorf("expected system path first, got %q", paths[0])
	}
	if paths[1] != filepath.Join(home, ".config", AppName) {
		t.Errorf("expected user path second, got %q", paths[1])
	}
}

func TestUserConfigDir(t *testing.T) {
	home := isolateHome(t)

	dir, err := UserConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(home, ".config", "keysync") {
		t.Errorf("unexpected user config dir %q", dir)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolateHome(t)
	configPath := filepath.Join(t.TempDir(), "keysync.yaml")

	configContent := `
log:
  level: debug
  format: json
locale_file: "public/locales/en/translation.json"
scan:
  ignore:
    - "**/node_modules/**"
hooks:
  module: "next-i18next"
locale:
  strict: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(New(), configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected log format 'json', got %q", cfg.Log.Format)
	}
	if cfg.LocaleFile != "public/locales/en/translation.json" {
		t.Errorf("unexpected locale file %q", cfg.LocaleFile)
	}
	if diff := cmp.Diff([]string{"**/node_modules/**"}, cfg.Scan.Ignore); diff != "" {
		t.Errorf("ignore mismatch (-want +got):\n%s", diff)
	}
	if cfg.Hooks.Module != "next-i18next" {
		t.Errorf("expected hook module 'next-i18next', got %q", cfg.Hooks.Module)
	}
	if cfg.Hooks.Hook != "useTranslation" {
		t.Errorf("expected default hook to survive partial config, got %q", cfg.Hooks.Hook)
	}
	if !cfg.Locale.Strict {
		t.Error("expected strict mode from config file")
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	isolateHome(t)
	configPath := filepath.Join(t.TempDir(), "keysync.yaml")

	if err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(New(), configPath); err == nil {
		t.Error("expected error for invalid config file")
	}
}

func TestLoad_WithEnvVars(t *testing.T) {
	isolateHome(t)
	t.Setenv("KEYSYNC_LOG_LEVEL", "error")
	t.Setenv("KEYSYNC_LOCALE_FILE", "i18n/de.json")
	t.Setenv("KEYSYNC_LOCALE_STRICT", "true")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("expected log level 'error' from env, got %q", cfg.Log.Level)
	}
	if cfg.LocaleFile != "i18n/de.json" {
		t.Errorf("expected locale file from env, got %q", cfg.LocaleFile)
	}
	if !cfg.Locale.Strict {
		t.Error("expected strict mode from env")
	}
}

func TestLoad_ValidationError(t *testing.T) {
	isolateHome(t)
	t.Setenv("KEYSYNC_SCAN_CALL_NAME", " ")

	if _, err := Load(New(), ""); err == nil {
		t.Error("expected validation error for blank call name")
	}
}

func TestFindConfigFile(t *testing.T) {
	home := isolateHome(t)

	if got := FindConfigFile(); got != "" {
		t.Skipf("config file present in search path: %s", got)
	}

	userDir := filepath.Join(home, ".config", AppName)
	path, err := GenerateConfig(userDir, "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := FindConfigFile(); got != path {
		t.Errorf("FindConfigFile() = %q, want %q", got, path)
	}
}
