package ports

import "github.com/aretw0/dwellkeys/pkg/domain"

// ProgressSink receives the dwell progress of a target as a fraction in [0,1].
// It is purely advisory: timing correctness never depends on it.
// A reset (cancel, activation, teardown) is reported as 0.
// Calls are serialised by the engine; Progress must not call back into it.
type ProgressSink interface {
	Progress(id domain.TargetID, fraction float64)
}

// AudioSink plays a short activation cue. It must return promptly;
// errors are logged by the engine and otherwise ignored.
type AudioSink interface {
	Play() error
}

// ClipboardSink receives the typed text when the copy action fires.
// Errors are logged by the keyboard and otherwise ignored.
type ClipboardSink interface {
	Copy(text string) error
}
