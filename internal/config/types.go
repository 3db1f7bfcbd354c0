package config

// LogConfig holds logging configuration
type LogConfig struct {
	Level        string `mapstructure:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `mapstructure:"format" yaml:"format"`               // text, json, pretty
	Output       string `mapstructure:"output" yaml:"output"`               // stdout, stderr, or file path
	FilePath     string `mapstructure:"file_path" yaml:"file_path"`         // path to log file (in addition to output)
	MaxSizeMB    int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`     // max size in MB before rotation
	MaxBackups   int    `mapstructure:"max_backups" yaml:"max_backups"`     // max number of old log files to keep
	MaxAgeDays   int    `mapstructure:"max_age_days" yaml:"max_age_days"`   // max days to retain old log files
	EnableCaller bool   `mapstructure:"enable_caller" yaml:"enable_caller"` // include source file/line in logs
	NoColor      bool   `mapstructure:"no_color" yaml:"no_color"`           // disable colored output (pretty format only)
}

// ScanConfig controls the unguarded extraction and the file walk.
type ScanConfig struct {
	// CallName is the function name recognized by `keysync sync`.
	CallName string `mapstructure:"call_name" yaml:"call_name"`

	// Ignore holds glob patterns matched against slash-separated paths
	// relative to the project directory. Matching directories are pruned.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// HooksConfig describes the translation hook recognized by `keysync sync-hooks`.
type HooksConfig struct {
	// Module is the import source the hook must come from.
	Module string `mapstructure:"module" yaml:"module"`

	// Hook is the imported hook name.
	Hook string `mapstructure:"hook" yaml:"hook"`

	// Member is the translation function destructured from the hook result.
	Member string `mapstructure:"member" yaml:"member"`

	// Extensions is the allow-list of scanned file extensions.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// LocaleConfig holds locale file handling options.
type LocaleConfig struct {
	// Strict refuses to overwrite a locale file that exists but is not
	// a valid JSON object.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// Config is the complete keysync configuration
type Config struct {
	Log        LogConfig    `mapstructure:"log" yaml:"log"`
	ProjectDir string       `mapstructure:"project_dir" yaml:"project_dir"`
	LocaleFile string       `mapstructure:"locale_file" yaml:"locale_file"`
	Scan       ScanConfig   `mapstructure:"scan" yaml:"scan"`
	Hooks      HooksConfig  `mapstructure:"hooks" yaml:"hooks"`
	Locale     LocaleConfig `mapstructure:"locale" yaml:"locale"`
}

// DefaultConfig returns the defaults used when no config file is present
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:        "warn",
			Format:       "pretty",
			Output:       "stderr",
			FilePath:     "",
			MaxSizeMB:    100,
			MaxBackups:   3,
			MaxAgeDays:   28,
			EnableCaller: false,
			NoColor:      false,
		},
		ProjectDir: ".",
		LocaleFile: "locales/en.json",
		Scan: ScanConfig{
			CallName: "t",
			Ignore:   []string{},
		},
		Hooks: HooksConfig{
			Module:     "react-i18next",
			Hook:       "useTranslation",
			Member:     "t",
			Extensions: []string{".ts", ".tsx", ".js", ".jsx"},
		},
		Locale: LocaleConfig{
			Strict: false,
		},
	}
}
