package dwell

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
)

// Engine is the dwell state machine shared by every target of a surface.
// It is safe for concurrent use; callbacks, hooks, sinks and the audio cue
// are always invoked after the internal lock is released.
type Engine struct {
	mu       sync.Mutex
	reportMu sync.Mutex // serialises sink calls so a reset is never overtaken by a stale tick
	settings domain.Settings
	targets  map[domain.TargetID]*target
	active   *session
	epoch    uint64 // source of per-target generations, survives unregister

	clock     ports.Clock
	audio     ports.AudioSink
	indicator ports.ProgressSink
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	tick      time.Duration
}

type target struct {
	callback      domain.ActivationFunc
	generation    uint64
	cooldownUntil time.Time
}

type session struct {
	domain.DwellSession
	generation uint64
	deadline   ports.Timer
	ticker     ports.Timer
}

// New creates an Engine with default settings and the system clock.
func New(opts ...Option) *Engine {
	e := &Engine{
		settings: domain.DefaultSettings(),
		targets:  make(map[domain.TargetID]*target),
		clock:    SystemClock,
		logger:   logging.NewNop(),
		tick:     DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Configure replaces the global settings. Running sessions and scheduled
// cooldowns keep the durations they started with.
func (e *Engine) Configure(s domain.Settings) {
	s = s.Normalize()

	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()

	e.logger.Debug("Dwell settings updated",
		"dwell", s.Dwell, "cooldown", s.Cooldown,
		"sound", s.Sound, "dwell_enabled", s.DwellEnabled)
}

// Settings returns the current global settings.
func (e *Engine) Settings() domain.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Register makes id eligible for dwell and click activation.
// Registering an existing id swaps the callback, tears down its session and
// keeps its cooldown.
func (e *Engine) Register(id domain.TargetID, callback domain.ActivationFunc) {
	var fx effects

	e.mu.Lock()
	if t, ok := e.targets[id]; ok {
		e.teardownLocked(id, &fx)
		t.callback = callback
	} else {
		e.targets[id] = &target{callback: callback, generation: e.nextGeneration()}
	}
	e.mu.Unlock()

	fx.run()
}

// Unregister removes id. A session on id is torn down without firing.
func (e *Engine) Unregister(id domain.TargetID) {
	var fx effects

	e.mu.Lock()
	if _, ok := e.targets[id]; ok {
		e.teardownLocked(id, &fx)
		delete(e.targets, id)
	}
	e.mu.Unlock()

	fx.run()
}

// PointerEnter starts a dwell on id when dwell mode is on, id is not cooling
// down and no other session is active. Re-entering the dwelling target is a no-op.
func (e *Engine) PointerEnter(id domain.TargetID) {
	var fx effects

	e.mu.Lock()
	e.enterLocked(id, &fx)
	e.mu.Unlock()

	fx.run()
}

// PointerLeave cancels the session if id owns it.
func (e *Engine) PointerLeave(id domain.TargetID) {
	var fx effects

	e.mu.Lock()
	if e.active != nil && e.active.TargetID == id {
		e.cancelLocked(&fx)
	}
	e.mu.Unlock()

	fx.run()
}

// PointerDown activates id immediately, regardless of dwell mode.
// A dwell on id is cancelled first; a dwell on another target is left alone.
func (e *Engine) PointerDown(id domain.TargetID) {
	var fx effects

	e.mu.Lock()
	if t, ok := e.targets[id]; ok {
		e.activateLocked(id, t, domain.SourceClick, &fx)
	}
	e.mu.Unlock()

	fx.run()
}

// Phase reports where id is in the state machine.
func (e *Engine) Phase(id domain.TargetID) domain.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.targets[id]
	switch {
	case !ok:
		return domain.PhaseUnknown
	case e.active != nil && e.active.TargetID == id:
		return domain.PhaseDwelling
	case e.clock.Now().Before(t.cooldownUntil):
		return domain.PhaseCooldown
	}
	return domain.PhaseIdle
}

// Active returns the in-flight session, if any.
func (e *Engine) Active() (domain.DwellSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return domain.DwellSession{}, false
	}
	return e.active.DwellSession, true
}

// Targets returns the number of registered targets.
func (e *Engine) Targets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.targets)
}

func (e *Engine) enterLocked(id domain.TargetID, fx *effects) {
	t, ok := e.targets[id]
	if !ok || !e.settings.DwellEnabled {
		return
	}
	if e.active != nil {
		if e.active.TargetID != id {
			e.logger.Debug("Dwell ignored, another target is dwelling", "target", id, "active", e.active.TargetID)
		}
		return
	}

	now := e.clock.Now()
	if now.Before(t.cooldownUntil) {
		e.logger.Debug("Dwell ignored, target cooling down", "target", id, "remaining", t.cooldownUntil.Sub(now))
		return
	}

	t.generation = e.nextGeneration()
	gen := t.generation
	dwell := e.settings.Dwell

	s := &session{
		DwellSession: domain.DwellSession{
			TargetID:   id,
			StartedAt:  now,
			DeadlineAt: now.Add(dwell),
		},
		generation: gen,
	}
	s.deadline = e.clock.AfterFunc(dwell, func() { e.expire(id, gen) })
	e.active = s
	e.scheduleTickLocked(s)

	ev := &domain.DwellEvent{Timestamp: now, Type: domain.EventDwellStart, TargetID: id, Duration: dwell}
	fx.add(func() {
		e.report(id, 0)
		fire(e.hooks.OnDwellStart, ev)
	})
}

// expire is the deadline timer. A stale generation means the session it was
// scheduled for is gone.
func (e *Engine) expire(id domain.TargetID, gen uint64) {
	var fx effects

	e.mu.Lock()
	t, ok := e.targets[id]
	if ok && e.ownsSession(id, gen) {
		e.activateLocked(id, t, domain.SourceDwell, &fx)
	}
	e.mu.Unlock()

	fx.run()
}

// activateLocked is the single choke point for both deadline and click.
// State is cleared before anything observable happens, so a concurrent
// second call for the same event finds a stale generation and does nothing.
func (e *Engine) activateLocked(id domain.TargetID, t *target, source domain.ActivationSource, fx *effects) {
	if e.active != nil && e.active.TargetID == id {
		e.stopSessionLocked()
		fx.add(func() { e.report(id, 0) })
	}

	now := e.clock.Now()
	t.generation = e.nextGeneration()
	gen := t.generation

	cooldown := e.settings.Cooldown
	t.cooldownUntil = now.Add(cooldown)
	e.clock.AfterFunc(cooldown, func() { e.cooldownEnd(id, gen) })

	sound := e.settings.Sound && e.audio != nil
	callback := t.callback
	ev := &domain.DwellEvent{Timestamp: now, Type: domain.EventActivate, TargetID: id, Source: source}

	e.logger.Debug("Target activated", "target", id, "source", source)

	fx.add(func() {
		if sound {
			e.playCue()
		}
		fire(e.hooks.OnActivate, ev)
		if callback != nil {
			callback(domain.Activation{TargetID: id, Source: source, At: now})
		}
	})
}

func (e *Engine) cooldownEnd(id domain.TargetID, gen uint64) {
	e.mu.Lock()
	t, ok := e.targets[id]
	current := ok && t.generation == gen
	now := e.clock.Now()
	e.mu.Unlock()

	if current {
		fire(e.hooks.OnCooldownEnd, &domain.DwellEvent{Timestamp: now, Type: domain.EventCooldownEnd, TargetID: id})
	}
}

func (e *Engine) cancelLocked(fx *effects) {
	id := e.active.TargetID
	e.stopSessionLocked()
	if t, ok := e.targets[id]; ok {
		t.generation = e.nextGeneration()
	}

	ev := &domain.DwellEvent{Timestamp: e.clock.Now(), Type: domain.EventDwellCancel, TargetID: id}
	fx.add(func() {
		e.report(id, 0)
		fire(e.hooks.OnDwellCancel, ev)
	})
}

// teardownLocked cancels a session owned by id, if any.
func (e *Engine) teardownLocked(id domain.TargetID, fx *effects) {
	if e.active != nil && e.active.TargetID == id {
		e.cancelLocked(fx)
	}
}

func (e *Engine) stopSessionLocked() {
	if e.active.deadline != nil {
		e.active.deadline.Stop()
	}
	if e.active.ticker != nil {
		e.active.ticker.Stop()
	}
	e.active = nil
}

func (e *Engine) ownsSession(id domain.TargetID, gen uint64) bool {
	return e.active != nil && e.active.TargetID == id && e.active.generation == gen
}

func (e *Engine) scheduleTickLocked(s *session) {
	if e.indicator == nil || e.tick <= 0 {
		return
	}
	id, gen := s.TargetID, s.generation
	s.ticker = e.clock.AfterFunc(e.tick, func() { e.onTick(id, gen) })
}

// onTick holds reportMu from the ownership check to the sink call. A cancel
// or activation landing in between queues its reset behind this report.
func (e *Engine) onTick(id domain.TargetID, gen uint64) {
	e.reportMu.Lock()
	defer e.reportMu.Unlock()

	e.mu.Lock()
	if !e.ownsSession(id, gen) {
		e.mu.Unlock()
		return
	}
	fraction := e.active.Progress(e.clock.Now())
	if fraction < 1 {
		e.scheduleTickLocked(e.active)
	}
	e.mu.Unlock()

	e.indicator.Progress(id, fraction)
}

func (e *Engine) report(id domain.TargetID, fraction float64) {
	if e.indicator == nil {
		return
	}
	e.reportMu.Lock()
	defer e.reportMu.Unlock()
	e.indicator.Progress(id, fraction)
}

func (e *Engine) playCue() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("Audio cue panicked", "panic", r)
		}
	}()
	if err := e.audio.Play(); err != nil {
		e.logger.Debug("Audio cue failed", "error", err)
	}
}

func (e *Engine) nextGeneration() uint64 {
	e.epoch++
	return e.epoch
}

func fire(hook func(*domain.DwellEvent), ev *domain.DwellEvent) {
	if hook != nil {
		hook(ev)
	}
}

// effects collects work that must run after the lock is released.
type effects []func()

func (fx *effects) add(f func()) {
	*fx = append(*fx, f)
}

func (fx effects) run() {
	for _, f := range fx {
		f()
	}
}
