// Package config loads thunkx.yml / thunkx.toml and merges command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/comalice/thunkx/internal/logging"
)

// FileNames are searched, in order, in the working directory.
var FileNames = []string{"thunkx.yml", "thunkx.yaml", "thunkx.toml"}

// Config is the thunkx configuration.
type Config struct {
	Log     logging.Config `yaml:"log"`
	Counter Counter        `yaml:"counter"`
}

// Counter configures the counter command.
type Counter struct {
	Initial    int           `yaml:"initial"`
	Step       int           `yaml:"step"`
	AsyncDelay time.Duration `yaml:"async_delay"`
	// Tick dispatches an increment every Tick when non-zero.
	Tick time.Duration `yaml:"tick"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: logging.Config{
			Level:  "info",
			Format: "text",
			Output: "auto",
		},
		Counter: Counter{
			Step:       1,
			AsyncDelay: time.Second,
		},
	}
}

// Load reads the file at path over the defaults. An empty path searches
// FileNames in the working directory; finding none yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := Find(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return Default(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find returns the first of FileNames present in dir, or "" if none is.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", err
		}
	}
	return "", nil
}

// Format returns "toml" for .toml paths and "yaml" otherwise.
func Format(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Parse decodes data in the given format over the defaults.
func Parse(data []byte, format string) (*Config, error) {
	raw, err := Unmarshal(data, format)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := Decode(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Unmarshal parses YAML or TOML into a generic map.
func Unmarshal(data []byte, format string) (map[string]any, error) {
	raw := map[string]any{}
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return raw, nil
}

// Decode decodes a generic map into target using yaml tags. Duration
// fields accept strings such as "250ms".
func Decode(raw any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Flag names shared by BindFlags and ApplyFlags.
const (
	FlagInitial    = "initial"
	FlagStep       = "step"
	FlagAsyncDelay = "async-delay"
	FlagTick       = "tick"
)

// BindFlags registers the counter flags on fs with defaults from cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Int(FlagInitial, cfg.Counter.Initial, "initial count")
	fs.Int(FlagStep, cfg.Counter.Step, "amount added by + and subtracted by -")
	fs.Duration(FlagAsyncDelay, cfg.Counter.AsyncDelay, "delay before the deferred increment commits")
	fs.Duration(FlagTick, cfg.Counter.Tick, "increment on this interval (0 disables)")
}

// ApplyFlags copies the flags the user set on fs into cfg.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	if fs.Changed(FlagInitial) {
		if cfg.Counter.Initial, err = fs.GetInt(FlagInitial); err != nil {
			return err
		}
	}
	if fs.Changed(FlagStep) {
		if cfg.Counter.Step, err = fs.GetInt(FlagStep); err != nil {
			return err
		}
	}
	if fs.Changed(FlagAsyncDelay) {
		if cfg.Counter.AsyncDelay, err = fs.GetDuration(FlagAsyncDelay); err != nil {
			return err
		}
	}
	if fs.Changed(FlagTick) {
		if cfg.Counter.Tick, err = fs.GetDuration(FlagTick); err != nil {
			return err
		}
	}
	return nil
}
