package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version" yaml:"version"`
	Widget  map[string]any `toml:"widget" yaml:"widget"` // overlay for Resolve
	Fields  []Field        `toml:"field" yaml:"field"`
	Log     LogSettings    `toml:"log" yaml:"log"`
}

// Field describes one input on the form and the endpoint it suggests from
type Field struct {
	ID          string `toml:"id" yaml:"id"`
	Label       string `toml:"label" yaml:"label"`
	URL         string `toml:"url" yaml:"url"`
	Placeholder string `toml:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// LogSettings represents logging configuration
type LogSettings struct {
	File  string `toml:"file" yaml:"file"`
	Level string `toml:"level" yaml:"level"`
}

// Options resolves the widget table onto the defaults
func (c *Config) Options() Options {
	return Resolve(c.Widget)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "suggestable", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults if the file does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Widget == nil {
		cfg.Widget = make(map[string]any)
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Widget:  make(map[string]any),
		Log: LogSettings{
			File:  "suggestable.log",
			Level: "info",
		},
	}
}

// ParseField reads a "label=url" flag value. The id is the label lowercased
// with spaces replaced by dashes.
func ParseField(s string) (Field, error) {
	label, url, ok := strings.Cut(s, "=")
	label = strings.TrimSpace(label)
	url = strings.TrimSpace(url)
	if !ok || label == "" || url == "" {
		return Field{}, fmt.Errorf("invalid field %q, want label=url", s)
	}
	return Field{
		ID:    strings.ReplaceAll(strings.ToLower(label), " ", "-"),
		Label: label,
		URL:   url,
	}, nil
}
