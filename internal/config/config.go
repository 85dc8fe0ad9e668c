// Package config loads the dwellkeys configuration: a YAML file overlaid by
// DWELLKEYS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "DWELLKEYS_"

// Vocabulary source kinds.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceRedis   = "redis"
)

// Config is the full host configuration.
type Config struct {
	Dwell           time.Duration `yaml:"dwell" env:"DWELL"`
	Cooldown        time.Duration `yaml:"cooldown" env:"COOLDOWN"`
	Sound           bool          `yaml:"sound" env:"SOUND"`
	DwellEnabled    bool          `yaml:"dwell_enabled" env:"DWELL_ENABLED"`
	Prediction      bool          `yaml:"prediction" env:"PREDICTION"`
	SuggestionLimit int           `yaml:"suggestion_limit" env:"SUGGESTION_LIMIT"`
	Language        string        `yaml:"language" env:"LANGUAGE"`
	LogLevel        string        `yaml:"log_level" env:"LOG_LEVEL"`

	Vocabulary VocabularyConfig `yaml:"vocabulary" envPrefix:"VOCABULARY_"`
	HTTP       HTTPConfig       `yaml:"http" envPrefix:"HTTP_"`
}

// VocabularyConfig selects where words come from.
type VocabularyConfig struct {
	Source string      `yaml:"source" env:"SOURCE"`
	Path   string      `yaml:"path" env:"PATH"`
	Watch  bool        `yaml:"watch" env:"WATCH"`
	Redis  RedisConfig `yaml:"redis" envPrefix:"REDIS_"`
}

// RedisConfig locates the vocabulary list in Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"ADDR"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
	Key      string `yaml:"key" env:"KEY"`
}

// HTTPConfig configures the interaction surface.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// Default returns the out-of-the-box configuration.
func Default() Config {
	s := domain.DefaultSettings()
	return Config{
		Dwell:           s.Dwell,
		Cooldown:        s.Cooldown,
		Sound:           s.Sound,
		DwellEnabled:    s.DwellEnabled,
		Prediction:      true,
		SuggestionLimit: predict.DefaultLimit,
		Language:        "es",
		LogLevel:        "info",
		Vocabulary: VocabularyConfig{
			Source: SourceBuiltin,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "dwellkeys:vocabulary",
			},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
	}
}

// Load reads path (when non-empty) over the defaults, applies the
// environment and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Dwell < 0 {
		return fmt.Errorf("invalid config: dwell must not be negative, got %s", c.Dwell)
	}
	if c.Cooldown < 0 {
		return fmt.Errorf("invalid config: cooldown must not be negative, got %s", c.Cooldown)
	}
	if c.SuggestionLimit < 0 {
		return fmt.Errorf("invalid config: suggestion_limit must not be negative, got %d", c.SuggestionLimit)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid config: language %q: %w", c.Language, err)
	}
	switch c.Vocabulary.Source {
	case SourceBuiltin:
	case SourceFile:
		if c.Vocabulary.Path == "" {
			return errors.New("invalid config: vocabulary.path is required for the file source")
		}
	case SourceRedis:
		if c.Vocabulary.Redis.Addr == "" {
			return errors.New("invalid config: vocabulary.redis.addr is required for the redis source")
		}
	default:
		return fmt.Errorf("invalid config: unknown vocabulary source %q", c.Vocabulary.Source)
	}
	return nil
}

// Settings returns the dwell settings.
func (c Config) Settings() domain.Settings {
	return domain.Settings{
		Dwell:        c.Dwell,
		Cooldown:     c.Cooldown,
		Sound:        c.Sound,
		DwellEnabled: c.DwellEnabled,
	}
}

// Tag returns the language tag. Validate guarantees it parses.
func (c Config) Tag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
