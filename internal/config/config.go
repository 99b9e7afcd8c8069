package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"blockslash/internal/eventbus"
)

// FileName is the default config file name inside the user config directory
const FileName = "config.toml"

// Flag names understood by the editor session
const (
	FlagAppendFlavourSlash = "enable_append_flavor_slash"
)

// ID generator kinds
const (
	IDGeneratorAutoIncrement = "autoincrement"
	IDGeneratorUUID          = "uuid"
)

// Palette placements
const (
	PlaceBelow = "below"
	PlaceAbove = "above"
)

var (
	ErrUnknownIDGenerator = errors.New("unknown id generator")
	ErrUnknownPlacement   = errors.New("unknown palette placement")
	ErrInvalidEntry       = errors.New("invalid palette entry")
)

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version" yaml:"version"`
	Editor  EditorSettings  `toml:"editor" yaml:"editor"`
	Flags   map[string]bool `toml:"flags" yaml:"flags"`
	Palette PaletteSettings `toml:"palette" yaml:"palette"`
}

// EditorSettings configures the document session
type EditorSettings struct {
	Title       string `toml:"title" yaml:"title"`
	IDGenerator string `toml:"id_generator" yaml:"id_generator"`
	LogFile     string `toml:"log_file" yaml:"log_file"`
}

// PaletteSettings configures the slash palette
type PaletteSettings struct {
	MaxHeight int            `toml:"max_height" yaml:"max_height"`
	Prefer    string         `toml:"prefer" yaml:"prefer"`
	Entries   []EntrySetting `toml:"entries,omitempty" yaml:"entries,omitempty"` // empty means built-in entries
}

// EntrySetting describes one palette candidate
type EntrySetting struct {
	Name    string `toml:"name" yaml:"name"`
	Icon    string `toml:"icon" yaml:"icon"`
	Flavour string `toml:"flavour" yaml:"flavour"`
	Type    string `toml:"type,omitempty" yaml:"type,omitempty"`
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
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted at the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "blockslash", FileName),
	}
}

// NewConfigServiceForPath creates a config service bound to an explicit file
func NewConfigServiceForPath(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus to a config service created by this package
func WithBus(cs ConfigService, bus eventbus.EventBus) ConfigService {
	if s, ok := cs.(*configService); ok {
		s.bus = bus
	}
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Flags: cfg.Flags})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshal(path, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Flags == nil {
		cfg.Flags = make(map[string]bool)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(path, config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes the config in the format implied by the path extension.
// TOML is the default; .yaml and .yml select YAML.
func Marshal(path string, config *Config) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(config)
	}
	return toml.Marshal(config)
}

func unmarshal(path string, data []byte, config *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, config)
	}
	return toml.Unmarshal(data, config)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Validate checks the values that the editor cannot fall back from
func (c *Config) Validate() error {
	switch c.Editor.IDGenerator {
	case IDGeneratorAutoIncrement, IDGeneratorUUID:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIDGenerator, c.Editor.IDGenerator)
	}

	switch c.Palette.Prefer {
	case PlaceBelow, PlaceAbove:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlacement, c.Palette.Prefer)
	}

	if c.Palette.MaxHeight < 1 {
		return fmt.Errorf("palette max_height must be positive, got %d", c.Palette.MaxHeight)
	}

	for i, e := range c.Palette.Entries {
		if strings.TrimSpace(e.Name) == "" || e.Flavour == "" {
			return fmt.Errorf("%w: entry %d needs a name and a flavour", ErrInvalidEntry, i)
		}
	}
	return nil
}

// Flag reports a session flag, false when unset
func (c *Config) Flag(name string) bool {
	return c.Flags[name]
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Editor: EditorSettings{
			Title:       "Untitled",
			IDGenerator: IDGeneratorAutoIncrement,
			LogFile:     "blockslash.log",
		},
		Flags: map[string]bool{
			FlagAppendFlavourSlash: true,
		},
		Palette: PaletteSettings{
			MaxHeight: 10,
			Prefer:    PlaceBelow,
		},
	}
}
