package domain

import "time"

// TargetID identifies a dwell target (a key code, a suggestion slot, an action button).
type TargetID string

// Phase is the state of a single target in the dwell state machine.
type Phase string

const (
	PhaseUnknown  Phase = "unknown"  // Target is not registered
	PhaseIdle     Phase = "idle"     // Eligible for a new dwell
	PhaseDwelling Phase = "dwelling" // Owns the active session
	PhaseCooldown Phase = "cooldown" // Recently activated, re-entry suppressed
)

// ActivationSource tells whether an activation came from a completed dwell or a click.
type ActivationSource string

const (
	SourceDwell ActivationSource = "dwell"
	SourceClick ActivationSource = "click"
)

// Activation is handed to a target's callback when it fires.
type Activation struct {
	TargetID TargetID         `json:"target_id"`
	Source   ActivationSource `json:"source"`
	At       time.Time        `json:"at"`
}

// ActivationFunc is the callback registered with a target.
type ActivationFunc func(Activation)
