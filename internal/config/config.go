package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Birthday window defaults
	Birthdays BirthdayConfig `yaml:"birthdays"`

	// Optional AI collaborators (command correction, semantic note search)
	AI AIConfig `yaml:"ai"`

	// Last logged-in user, offered as the default at startup
	DefaultUser string `yaml:"default_user"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"` // Directory holding per-user databases
}

type BirthdayConfig struct {
	DefaultWindowDays int `yaml:"default_window_days"` // birthdays command default for N
}

type AIConfig struct {
	KeyFile string `yaml:"key_file"` // File holding the API key; AI features are off when absent
	Model   string `yaml:"model"`    // Model used for correction and semantic search
}

// DefaultConfigPath returns ~/.config/satchel/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "satchel", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "satchel", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Storage: StorageConfig{
			DataDir: filepath.Join(homeDir, ".config", "satchel", "data"),
		},
		Birthdays: BirthdayConfig{
			DefaultWindowDays: 7,
		},
		AI: AIConfig{
			KeyFile: filepath.Join(homeDir, ".config", "satchel", "key.txt"),
			Model:   "gemini-2.0-flash",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the data directory if needed
func (c *Config) EnsureDirectories() error {
	return os.MkdirAll(c.Storage.DataDir, 0700)
}
