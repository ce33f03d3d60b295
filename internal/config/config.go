// Package config loads the markov command configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default file is not an error.
const DefaultPath = "markov.yaml"

// Config is the resolved command configuration.
type Config struct {
	Workers        int     `mapstructure:"workers"`
	LogLevel       string  `mapstructure:"log_level"`
	Alphabet       string  `mapstructure:"alphabet"`
	SequenceLength int     `mapstructure:"sequence_length"`
	Tolerance      float64 `mapstructure:"tolerance"`
	Store          Store   `mapstructure:"store"`
	Metrics        Metrics `mapstructure:"metrics"`
}

// Store selects the model store backing `models`, `serve` and `mcp`.
type Store struct {
	Kind   string `mapstructure:"kind"`
	Dir    string `mapstructure:"dir"`
	Redis  Redis  `mapstructure:"redis"`
	SQLite SQLite `mapstructure:"sqlite"`
}

type SQLite struct {
	Path string `mapstructure:"path"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
	// TTL expires pushed models; zero keeps them.
	TTL time.Duration `mapstructure:"ttl"`
}

type Metrics struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the configuration used when nothing is set.
// Tolerance is loose enough for models written with 6 significant digits.
func Default() Config {
	return Config{
		Workers:        1,
		LogLevel:       "info",
		Alphabet:       "A",
		SequenceLength: 0,
		Tolerance:      1e-4,
		Store: Store{
			Kind: "file",
			Dir:  "models",
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "markov:model:",
			},
			SQLite: SQLite{Path: "markov.db"},
		},
		Metrics: Metrics{Addr: ":8080"},
	}
}

// Load reads path (YAML or JSON by extension) over the defaults.
// If path is empty, DefaultPath is tried and silently skipped when absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode applies raw settings onto cfg. Unknown keys are rejected.
func Decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if len([]rune(c.Alphabet)) != 1 {
		return fmt.Errorf("alphabet must be a single starting rune, got %q", c.Alphabet)
	}
	if c.SequenceLength < 0 {
		return fmt.Errorf("sequence_length must be non-negative, got %d", c.SequenceLength)
	}
	if c.Store.Redis.TTL < 0 {
		return fmt.Errorf("store.redis.ttl must be non-negative, got %s", c.Store.Redis.TTL)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	switch c.Store.Kind {
	case "file", "redis", "sqlite":
	case "memory":
		return fmt.Errorf("store kind \"memory\" does not outlive the process; use file, redis or sqlite")
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	return nil
}

// AlphabetStart returns the first rune of the configured alphabet.
func (c Config) AlphabetStart() rune {
	return []rune(c.Alphabet)[0]
}
