package dwell

import (
	"log/slog"
	"time"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
)

// DefaultTickInterval approximates one animation frame.
const DefaultTickInterval = 16 * time.Millisecond

// Option configures the Engine.
type Option func(*Engine)

// WithClock replaces the wall clock (tests use a manual clock).
func WithClock(clock ports.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithSettings sets the initial settings (default: domain.DefaultSettings).
func WithSettings(s domain.Settings) Option {
	return func(e *Engine) {
		e.settings = s.Normalize()
	}
}

// WithLogger configures a logger for the Engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithAudio configures the activation cue.
func WithAudio(audio ports.AudioSink) Option {
	return func(e *Engine) {
		e.audio = audio
	}
}

// WithIndicator configures the progress sink for visual feedback.
func WithIndicator(indicator ports.ProgressSink) Option {
	return func(e *Engine) {
		e.indicator = indicator
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTickInterval sets how often progress is reported while dwelling.
// Zero or negative disables the recurring tick (start and reset are still reported).
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.tick = d
	}
}
