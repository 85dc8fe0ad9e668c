package dwellkeys

import (
	"log/slog"
	"time"

	"github.com/aretw0/dwellkeys/pkg/compose"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"golang.org/x/text/language"
)

// Option defines a functional option for configuring the Keyboard.
type Option func(*Keyboard)

// WithSource sets where the vocabulary is loaded from (default: the
// embedded Spanish vocabulary).
func WithSource(src ports.VocabularySource) Option {
	return func(k *Keyboard) {
		k.source = src
	}
}

// WithSettings sets the initial dwell settings.
func WithSettings(s domain.Settings) Option {
	return func(k *Keyboard) {
		k.settings = s
	}
}

// WithClock replaces the wall clock used for dwell timing.
func WithClock(clock ports.Clock) Option {
	return func(k *Keyboard) {
		k.clock = clock
	}
}

// WithAudio configures the activation cue.
func WithAudio(audio ports.AudioSink) Option {
	return func(k *Keyboard) {
		k.audio = audio
	}
}

// WithIndicator configures the dwell progress sink.
func WithIndicator(indicator ports.ProgressSink) Option {
	return func(k *Keyboard) {
		k.indicator = indicator
	}
}

// WithClipboard configures where the copy action sends the typed text.
// Without one the copy target is registered but does nothing.
func WithClipboard(clipboard ports.ClipboardSink) Option {
	return func(k *Keyboard) {
		k.clipboard = clipboard
	}
}

// WithTickInterval sets how often dwell progress is reported.
func WithTickInterval(d time.Duration) Option {
	return func(k *Keyboard) {
		k.tick = &d
	}
}

// WithLifecycleHooks registers observability hooks. May be given more than once.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(k *Keyboard) {
		k.hooks = append(k.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Keyboard) {
		k.logger = logger
	}
}

// WithLayout replaces the Spanish layout.
func WithLayout(layout compose.Layout) Option {
	return func(k *Keyboard) {
		k.layout = layout
	}
}

// WithLanguage selects case-folding rules for the predictor (default: Spanish).
func WithLanguage(tag language.Tag) Option {
	return func(k *Keyboard) {
		k.tag = tag
	}
}

// WithSuggestionLimit sets how many suggestion slots are offered.
func WithSuggestionLimit(n int) Option {
	return func(k *Keyboard) {
		k.limit = n
	}
}

// WithPredictionDisabled starts with word prediction switched off.
func WithPredictionDisabled() Option {
	return func(k *Keyboard) {
		k.predictionOff = true
	}
}

// WithChangeListener is called with a fresh snapshot after every change to
// the text, the suggestions or the vocabulary.
func WithChangeListener(fn func(Snapshot)) Option {
	return func(k *Keyboard) {
		k.listeners = append(k.listeners, fn)
	}
}

// WithPredictionObserver is called after every suggestion refresh with the
// number of results and the lookup latency.
func WithPredictionObserver(fn func(results int, elapsed time.Duration)) Option {
	return func(k *Keyboard) {
		k.observePrediction = fn
	}
}
