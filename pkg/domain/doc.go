/*
Package domain contains the core models shared by the dwell engine, the
prediction engine and their adapters.

It is kept free of I/O, timers and persistence. Everything here is plain data
plus the small amount of behaviour needed to keep it consistent.

# Key Entities

  - TargetID: identifies any control that can be dwell- or click-activated.
  - Phase: the per-target state (Idle, Dwelling, Cooldown).
  - DwellSession: the single, globally exclusive in-flight dwell.
  - Settings: timing and mode parameters for the dwell engine.
  - Entry: a (word, frequency) pair of a prediction vocabulary.
  - LifecycleHooks: callbacks for observing engine transitions.
*/
package domain
