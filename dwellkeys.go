package dwellkeys

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/compose"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/dwell"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/aretw0/dwellkeys/pkg/vocabulary"
	"golang.org/x/text/language"
)

const (
	// ClearTarget empties the text when activated.
	ClearTarget domain.TargetID = "clear"
	// CopyTarget hands the typed text to the clipboard sink. Nothing happens
	// while the text is empty.
	CopyTarget domain.TargetID = "copy"
)

// SuggestionTarget returns the target id of the i-th suggestion slot.
func SuggestionTarget(i int) domain.TargetID {
	return domain.TargetID("suggestion-" + strconv.Itoa(i))
}

// ErrNotWatchable is returned by Watch when the source cannot signal changes.
var ErrNotWatchable = errors.New("vocabulary source does not support watching")

// Snapshot is a consistent-enough copy of the keyboard state for rendering.
type Snapshot struct {
	Text              string               `json:"text"`
	Word              string               `json:"word"`
	Shift             bool                 `json:"shift"`
	Caps              bool                 `json:"caps"`
	Suggestions       []string             `json:"suggestions"`
	PredictionEnabled bool                 `json:"prediction_enabled"`
	Active            *domain.DwellSession `json:"active,omitempty"`
	Settings          domain.Settings      `json:"settings"`
}

// Keyboard wires the dwell engine, the predictor and the composer.
type Keyboard struct {
	engine    *dwell.Engine
	predictor *predict.Predictor
	composer  *compose.Composer
	source    ports.VocabularySource

	// refreshMu serialises suggestion refreshes so slot registration follows
	// the order of activations.
	refreshMu   sync.Mutex
	suggestions atomic.Pointer[[]string]

	// Options
	settings          domain.Settings
	clock             ports.Clock
	audio             ports.AudioSink
	indicator         ports.ProgressSink
	clipboard         ports.ClipboardSink
	tick              *time.Duration
	hooks             []domain.LifecycleHooks
	logger            *slog.Logger
	layout            compose.Layout
	tag               language.Tag
	limit             int
	predictionOff     bool
	listeners         []func(Snapshot)
	observePrediction func(int, time.Duration)
}

// New creates a Keyboard and registers every target. The vocabulary is empty
// until Reload is called.
func New(opts ...Option) *Keyboard {
	k := &Keyboard{
		settings: domain.DefaultSettings(),
		logger:   logging.NewNop(),
		layout:   compose.Spanish,
		tag:      language.Spanish,
		limit:    predict.DefaultLimit,
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.source == nil {
		k.source = vocabulary.Builtin()
	}

	engineOpts := []dwell.Option{
		dwell.WithSettings(k.settings),
		dwell.WithLogger(k.logger),
		dwell.WithLifecycleHooks(domain.MergeHooks(k.hooks...)),
	}
	if k.clock != nil {
		engineOpts = append(engineOpts, dwell.WithClock(k.clock))
	}
	if k.audio != nil {
		engineOpts = append(engineOpts, dwell.WithAudio(k.audio))
	}
	if k.indicator != nil {
		engineOpts = append(engineOpts, dwell.WithIndicator(k.indicator))
	}
	if k.tick != nil {
		engineOpts = append(engineOpts, dwell.WithTickInterval(*k.tick))
	}

	k.engine = dwell.New(engineOpts...)
	k.predictor = predict.New(predict.WithLanguage(k.tag), predict.WithLogger(k.logger))
	k.predictor.SetEnabled(!k.predictionOff)
	k.composer = compose.New(k.layout)
	k.suggestions.Store(&[]string{})

	for _, key := range k.layout.Keys() {
		code := key.Code
		k.engine.Register(code, func(domain.Activation) {
			k.composer.Press(code)
			k.refresh()
		})
	}
	k.engine.Register(ClearTarget, func(domain.Activation) {
		k.composer.Clear()
		k.refresh()
	})
	k.engine.Register(CopyTarget, func(domain.Activation) {
		k.copyText()
	})

	return k
}

// Reload loads the vocabulary from the configured source and swaps it in.
// Malformed entries are skipped and counted in the report.
func (k *Keyboard) Reload(ctx context.Context) (predict.LoadReport, error) {
	entries, skipped, err := vocabulary.Load(ctx, k.source)
	if err != nil {
		return predict.LoadReport{}, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	for _, err := range skipped {
		k.logger.Debug("Skipping vocabulary entry", "error", err)
	}

	report := k.predictor.Load(entries)
	report.Skipped += len(skipped)
	k.logger.Info("Vocabulary loaded", "words", report.Words, "loaded", report.Loaded, "skipped", report.Skipped)

	k.refresh()
	return report, nil
}

// Watch reloads the vocabulary every time the source signals a change, until
// ctx is done. Reload failures are logged and the previous vocabulary kept.
func (k *Keyboard) Watch(ctx context.Context) error {
	w, ok := k.source.(ports.Watchable)
	if !ok {
		return ErrNotWatchable
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch vocabulary: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			if _, err := k.Reload(ctx); err != nil {
				k.logger.Warn("Vocabulary reload failed, keeping previous", "error", err)
			}
		}
	}
}

// PointerEnter forwards a pointer-enter on id to the dwell engine.
func (k *Keyboard) PointerEnter(id domain.TargetID) {
	k.engine.PointerEnter(id)
}

// PointerLeave forwards a pointer-leave on id to the dwell engine.
func (k *Keyboard) PointerLeave(id domain.TargetID) {
	k.engine.PointerLeave(id)
}

// PointerDown forwards a click on id to the dwell engine.
func (k *Keyboard) PointerDown(id domain.TargetID) {
	k.engine.PointerDown(id)
}

// Phase reports where id is in the dwell state machine.
func (k *Keyboard) Phase(id domain.TargetID) domain.Phase {
	return k.engine.Phase(id)
}

// Configure replaces the dwell settings for future sessions.
func (k *Keyboard) Configure(s domain.Settings) {
	k.engine.Configure(s)
	k.notify()
}

// SetPredictionEnabled switches word prediction on or off.
func (k *Keyboard) SetPredictionEnabled(enabled bool) {
	k.predictor.SetEnabled(enabled)
	k.refresh()
}

// Predict queries the vocabulary directly, bypassing the text state.
func (k *Keyboard) Predict(prefix string, limit int) []string {
	return k.predictor.Predict(prefix, limit)
}

// Layout returns the keyboard layout.
func (k *Keyboard) Layout() compose.Layout {
	return k.layout
}

// Snapshot returns the current state for rendering.
func (k *Keyboard) Snapshot() Snapshot {
	st := k.composer.State()
	snap := Snapshot{
		Text:              st.Text,
		Word:              st.Word,
		Shift:             st.Shift,
		Caps:              st.Caps,
		Suggestions:       append([]string{}, *k.suggestions.Load()...),
		PredictionEnabled: k.predictor.Enabled(),
		Settings:          k.engine.Settings(),
	}
	if s, ok := k.engine.Active(); ok {
		snap.Active = &s
	}
	return snap
}

// refresh recomputes the suggestions for the word in progress and keeps the
// suggestion targets in step: slots whose word changed are re-registered
// (ending any dwell on them) and surplus slots are unregistered.
func (k *Keyboard) refresh() {
	k.refreshMu.Lock()

	start := time.Now()
	next := k.predictor.Predict(k.composer.Word(), k.limit)
	if k.observePrediction != nil {
		k.observePrediction(len(next), time.Since(start))
	}

	prev := *k.suggestions.Load()
	for i, word := range next {
		if i < len(prev) && prev[i] == word {
			continue
		}
		k.engine.Register(SuggestionTarget(i), k.accept(word))
	}
	for i := len(next); i < len(prev); i++ {
		k.engine.Unregister(SuggestionTarget(i))
	}
	k.suggestions.Store(&next)

	k.refreshMu.Unlock()

	k.notify()
}

func (k *Keyboard) copyText() {
	text := k.composer.State().Text
	if text == "" || k.clipboard == nil {
		return
	}
	if err := k.clipboard.Copy(text); err != nil {
		k.logger.Warn("Copy failed", "error", err)
		return
	}
	k.logger.Debug("Text copied", "runes", utf8.RuneCountInString(text))
}

func (k *Keyboard) accept(word string) domain.ActivationFunc {
	return func(domain.Activation) {
		k.composer.Accept(word)
		k.refresh()
	}
}

func (k *Keyboard) notify() {
	if len(k.listeners) == 0 {
		return
	}
	snap := k.Snapshot()
	for _, fn := range k.listeners {
		fn(snap)
	}
}
