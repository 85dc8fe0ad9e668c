package dwell

import (
	"time"

	"github.com/aretw0/dwellkeys/pkg/ports"
)

// SystemClock is the wall-clock implementation of ports.Clock.
var SystemClock ports.Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
