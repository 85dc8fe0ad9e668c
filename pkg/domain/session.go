package domain

import "time"

// DwellSession is the in-flight dwell. At most one exists at any instant.
type DwellSession struct {
	TargetID   TargetID  `json:"target_id"`
	StartedAt  time.Time `json:"started_at"`
	DeadlineAt time.Time `json:"deadline_at"`
}

// Duration returns the length of the countdown fixed when the session started.
func (s DwellSession) Duration() time.Duration {
	return s.DeadlineAt.Sub(s.StartedAt)
}

// Progress returns the fraction of the countdown elapsed at now, clamped to [0,1].
func (s DwellSession) Progress(now time.Time) float64 {
	total := s.Duration()
	if total <= 0 {
		return 1
	}
	elapsed := now.Sub(s.StartedAt)
	switch {
	case elapsed <= 0:
		return 0
	case elapsed >= total:
		return 1
	}
	return float64(elapsed) / float64(total)
}
