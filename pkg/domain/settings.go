package domain

import "time"

const (
	DefaultDwell    = 800 * time.Millisecond
	DefaultCooldown = 300 * time.Millisecond
)

// Settings are the global dwell parameters. They apply to sessions and
// cooldowns started after they are set.
type Settings struct {
	Dwell        time.Duration `json:"dwell"`
	Cooldown     time.Duration `json:"cooldown"`
	Sound        bool          `json:"sound"`
	DwellEnabled bool          `json:"dwell_enabled"`
}

// DefaultSettings mirrors the out-of-the-box keyboard behaviour.
func DefaultSettings() Settings {
	return Settings{
		Dwell:        DefaultDwell,
		Cooldown:     DefaultCooldown,
		Sound:        true,
		DwellEnabled: true,
	}
}

// Normalize clamps negative durations to zero.
func (s Settings) Normalize() Settings {
	if s.Dwell < 0 {
		s.Dwell = 0
	}
	if s.Cooldown < 0 {
		s.Cooldown = 0
	}
	return s
}
