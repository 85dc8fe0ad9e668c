/*
Package ports defines the driven ports (interfaces) of the dwell and
prediction engines.

These interfaces decouple the core from timers, audio output, visual feedback
and vocabulary storage, so the engines can be driven by a fake clock in tests
and hosted by any interaction surface.

# Key Interfaces

  - Clock: time source and one-shot timer scheduling.
  - ProgressSink: consumes dwell progress for visual feedback.
  - AudioSink: best-effort activation cue.
  - VocabularySource: supplies raw (word, frequency) entries, optionally Watchable.
  - DistributedLocker: serialises writers of a shared vocabulary.
*/
package ports
