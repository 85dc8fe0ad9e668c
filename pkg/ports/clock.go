package ports

import "time"

// Timer is a scheduled one-shot function.
// Stop is best effort; callers must not rely on it to prevent a late fire.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so the dwell engine can be driven deterministically.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time

	// AfterFunc runs f on its own goroutine once d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}
