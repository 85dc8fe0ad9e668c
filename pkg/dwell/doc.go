/*
Package dwell implements the dwell activation engine.

Every interactive control (keyboard key, suggestion, action button) registers
as a target. Sustained pointer presence over a target for the configured
duration, or a click, turns into exactly one activation of that target.

# Rules

  - At most one dwell session exists across all targets; the first one wins.
  - A target is suppressed for the cooldown duration after it activates.
  - A click always activates, whether or not dwell mode is enabled and whether
    or not another target is dwelling.
  - Settings changes apply to sessions started afterwards only.
  - Operations on unknown targets are silent no-ops.

Timers come from a ports.Clock. Each scheduled func captures the target's
generation and does nothing if the generation moved on, so a late timer can
never fire a cancelled session even when Stop is unreliable.
*/
package dwell
