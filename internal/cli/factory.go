// Package cli implements the dwellkeys commands on top of the library.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/dwellkeys"
	"github.com/aretw0/dwellkeys/internal/config"
	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/adapters/audio"
	"github.com/aretw0/dwellkeys/pkg/adapters/clipboard"
	"github.com/aretw0/dwellkeys/pkg/adapters/redis"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/aretw0/dwellkeys/pkg/vocabulary"
)

// Options are shared by every command.
type Options struct {
	ConfigPath string
	Debug      bool
}

// loadConfig reads the configuration and builds the matching logger.
func loadConfig(opts Options) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	level := logging.ParseLevel(cfg.LogLevel)
	if opts.Debug {
		level = slog.LevelDebug
	}
	return cfg, logging.New(level), nil
}

// newSource builds the vocabulary source selected by cfg.
func newSource(cfg config.Config, logger *slog.Logger) (ports.VocabularySource, error) {
	switch cfg.Vocabulary.Source {
	case config.SourceBuiltin:
		return vocabulary.Builtin(), nil
	case config.SourceFile:
		return vocabulary.NewFileSource(cfg.Vocabulary.Path, vocabulary.WithFileLogger(logger)), nil
	case config.SourceRedis:
		r := cfg.Vocabulary.Redis
		return redis.New(r.Addr, r.Password, r.DB, redis.WithKey(r.Key), redis.WithLogger(logger)), nil
	}
	return nil, fmt.Errorf("unknown vocabulary source %q", cfg.Vocabulary.Source)
}

// newKeyboard builds a Keyboard from cfg. extra options are applied last.
func newKeyboard(cfg config.Config, logger *slog.Logger, extra ...dwellkeys.Option) (*dwellkeys.Keyboard, error) {
	src, err := newSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	opts := []dwellkeys.Option{
		dwellkeys.WithSource(src),
		dwellkeys.WithSettings(cfg.Settings()),
		dwellkeys.WithLanguage(cfg.Tag()),
		dwellkeys.WithSuggestionLimit(cfg.SuggestionLimit),
		dwellkeys.WithLogger(logger),
		dwellkeys.WithAudio(audio.NewBell(os.Stderr)),
		dwellkeys.WithClipboard(clipboard.NewOSC52(os.Stderr)),
		dwellkeys.WithLifecycleHooks(createDebugHooks(logger)),
	}
	if !cfg.Prediction {
		opts = append(opts, dwellkeys.WithPredictionDisabled())
	}
	return dwellkeys.New(append(opts, extra...)...), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDwellStart: func(e *domain.DwellEvent) {
			logger.Debug("Dwell started", "target", e.TargetID, "duration", e.Duration)
		},
		OnDwellCancel: func(e *domain.DwellEvent) {
			logger.Debug("Dwell cancelled", "target", e.TargetID)
		},
		OnActivate: func(e *domain.DwellEvent) {
			logger.Debug("Activated", "target", e.TargetID, "source", e.Source)
		},
		OnCooldownEnd: func(e *domain.DwellEvent) {
			logger.Debug("Cooldown ended", "target", e.TargetID)
		},
	}
}

// printSystemMessage prints a standardized system message to stderr.
func printSystemMessage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, ">>> %s\n", fmt.Sprintf(format, args...))
}
