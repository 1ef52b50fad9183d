package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Source kinds.
const (
	SourceStatic = "static"
	SourceYAML   = "yaml"
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Combobox ComboboxConfig
	Source   SourceConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ComboboxConfig holds widget behavior settings.
type ComboboxConfig struct {
	Label           string
	AutoSelectFirst bool `mapstructure:"auto_select_first"`
	// Autocomplete is the input's declared aria-autocomplete mode: "list" or "both".
	Autocomplete string
}

// SourceConfig selects where candidates come from.
type SourceConfig struct {
	Kind         string
	Items        []string
	File         string
	JSONPath     string `mapstructure:"json_path"`
	Collection   string
	TypoDistance int `mapstructure:"typo_distance"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds log settings. An empty File discards logs; the terminal
// belongs to the UI.
type LogConfig struct {
	Level string
	File  string
}

// Path returns the config file location: COMBOBOX_CONFIG when set, else
// ~/.config/combobox/config.toml.
func Path() string {
	if p := os.Getenv("COMBOBOX_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "combobox", "config.toml")
}

// New returns a viper instance with defaults, config file lookup and env
// overrides (prefix COMBOBOX_) set up. Callers may bind flags before Load.
func New() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("combobox.label", "Fruit")
	v.SetDefault("combobox.auto_select_first", false)
	v.SetDefault("combobox.autocomplete", "list")
	v.SetDefault("source.kind", SourceSQLite)
	v.SetDefault("source.items", []string{})
	v.SetDefault("source.file", "")
	v.SetDefault("source.json_path", "")
	v.SetDefault("source.collection", "fruit")
	v.SetDefault("source.typo_distance", 0)
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "combobox", "combobox.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("COMBOBOX")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env.
func Load() (Config, error) {
	return LoadFrom(New())
}

// LoadFrom reads the config file (if present) into v and decodes it.
func LoadFrom(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalize() {
	c.Combobox.Autocomplete = strings.ToLower(strings.TrimSpace(c.Combobox.Autocomplete))
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var result *multierror.Error

	switch c.Combobox.Autocomplete {
	case "list", "both":
	default:
		result = multierror.Append(result, fmt.Errorf("combobox.autocomplete: %q is not list or both", c.Combobox.Autocomplete))
	}

	switch c.Source.Kind {
	case SourceStatic:
		if len(c.Source.Items) == 0 {
			result = multierror.Append(result, fmt.Errorf("source.items: required for the static source"))
		}
	case SourceYAML, SourceJSON:
		if strings.TrimSpace(c.Source.File) == "" {
			result = multierror.Append(result, fmt.Errorf("source.file: required for the %s source", c.Source.Kind))
		}
	case SourceSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			result = multierror.Append(result, fmt.Errorf("database.path: required for the sqlite source"))
		}
		if strings.TrimSpace(c.Source.Collection) == "" {
			result = multierror.Append(result, fmt.Errorf("source.collection: required for the sqlite source"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("source.kind: unknown kind %q", c.Source.Kind))
	}

	if c.Source.TypoDistance < 0 {
		result = multierror.Append(result, fmt.Errorf("source.typo_distance: must not be negative"))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	return result.ErrorOrNil()
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("combobox.label", cfg.Combobox.Label)
	v.Set("combobox.auto_select_first", cfg.Combobox.AutoSelectFirst)
	v.Set("combobox.autocomplete", cfg.Combobox.Autocomplete)
	v.Set("source.kind", cfg.Source.Kind)
	v.Set("source.items", cfg.Source.Items)
	v.Set("source.file", cfg.Source.File)
	v.Set("source.json_path", cfg.Source.JSONPath)
	v.Set("source.collection", cfg.Source.Collection)
	v.Set("source.typo_distance", cfg.Source.TypoDistance)
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
