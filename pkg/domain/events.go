package domain

import "time"

// EventType defines the category of a dwell event.
type EventType string

const (
	EventDwellStart  EventType = "dwell_start"
	EventDwellCancel EventType = "dwell_cancel"
	EventActivate    EventType = "activate"
	EventCooldownEnd EventType = "cooldown_end"
)

// DwellEvent describes a transition of a single target.
type DwellEvent struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      EventType        `json:"type"`
	TargetID  TargetID         `json:"target_id"`
	Source    ActivationSource `json:"source,omitempty"`   // Only for EventActivate
	Duration  time.Duration    `json:"duration,omitempty"` // Countdown length for EventDwellStart
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run outside the engine lock and must not block.
type LifecycleHooks struct {
	OnDwellStart  func(*DwellEvent)
	OnDwellCancel func(*DwellEvent)
	OnActivate    func(*DwellEvent)
	OnCooldownEnd func(*DwellEvent)
}

// MergeHooks fans each event out to every non-nil hook, in order.
func MergeHooks(all ...LifecycleHooks) LifecycleHooks {
	fan := func(pick func(LifecycleHooks) func(*DwellEvent)) func(*DwellEvent) {
		var fns []func(*DwellEvent)
		for _, h := range all {
			if fn := pick(h); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(e *DwellEvent) {
			for _, fn := range fns {
				fn(e)
			}
		}
	}
	return LifecycleHooks{
		OnDwellStart:  fan(func(h LifecycleHooks) func(*DwellEvent) { return h.OnDwellStart }),
		OnDwellCancel: fan(func(h LifecycleHooks) func(*DwellEvent) { return h.OnDwellCancel }),
		OnActivate:    fan(func(h LifecycleHooks) func(*DwellEvent) { return h.OnActivate }),
		OnCooldownEnd: fan(func(h LifecycleHooks) func(*DwellEvent) { return h.OnCooldownEnd }),
	}
}
