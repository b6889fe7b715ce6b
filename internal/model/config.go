package model

import (
	"os"
	"path/filepath"
)

// Config is the complete runtime configuration
type Config struct {
	Memory      MemoryConfig      `yaml:"memory" mapstructure:"memory"`
	Keywords    KeywordsConfig    `yaml:"keywords" mapstructure:"keywords"`
	Viewer      ViewerConfig      `yaml:"viewer" mapstructure:"viewer"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// MemoryConfig locates the persistent judgment snapshot
type MemoryConfig struct {
	// Path of the primary memory file
	Path string `yaml:"path" mapstructure:"path"`
}

// KeywordsConfig selects the keywords to infer and how to treat
// provisional answers
type KeywordsConfig struct {
	// Active lists the keyword ids considered during a run
	Active []string `yaml:"active" mapstructure:"active"`

	// RedoMaybes treats remembered maybe-answers as unknown so the
	// user is asked again
	RedoMaybes bool `yaml:"redo_maybes" mapstructure:"redo_maybes"`

	// CatalogPath is an optional YAML file adding or overriding
	// keyword descriptors
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
}

// ViewerConfig describes the external mesh viewer
type ViewerConfig struct {
	// Program is the viewer executable; empty disables launching
	Program string `yaml:"program" mapstructure:"program"`

	// WorkDir is the viewer's working directory
	WorkDir string `yaml:"workdir" mapstructure:"workdir"`
}

// ConcurrencyConfig bounds the hashing fan-out
type ConcurrencyConfig struct {
	// HashWorkers is the number of concurrent mesh hashing jobs
	HashWorkers int `yaml:"hash_workers" mapstructure:"hash_workers"`

	// MaxReadBytesPerSec throttles mesh reads so a background run
	// does not saturate disk I/O; 0 disables throttling
	MaxReadBytesPerSec float64 `yaml:"max_read_bytes_per_sec" mapstructure:"max_read_bytes_per_sec"`
}

// LLMConfig configures the optional machine suggester. Disabled unless
// a provider is set; its answers are always provisional.
type LLMConfig struct {
	// Provider name: "openai" or "" (disabled)
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for the provider
	APIKey string `yaml:"-" mapstructure:"api_key"`

	// BaseURL for custom endpoints
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for API requests, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// ReportPath receives the JSON patch report; empty disables it
	ReportPath string `yaml:"report_path" mapstructure:"report_path"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Memory: MemoryConfig{
			Path: filepath.Join(home, ".tagsmith", "memory.json"),
		},
		Keywords: KeywordsConfig{
			Active:     []string{"SOS_Revealing"},
			RedoMaybes: false,
		},
		Concurrency: ConcurrencyConfig{
			HashWorkers: 4,
		},
		LLM: LLMConfig{
			Provider: "", // Disabled by default
			Timeout:  30,
		},
	}
}
