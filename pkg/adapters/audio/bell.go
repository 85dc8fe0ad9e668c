// Package audio provides activation cues for the dwell engine.
package audio

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/aretw0/dwellkeys/pkg/ports"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the bell has no terminal to ring.
var ErrNotTerminal = errors.New("audio: output is not a terminal")

const bel = "\a"

var _ ports.AudioSink = (*Bell)(nil)

// Bell rings the terminal bell on every activation.
type Bell struct {
	mu    sync.Mutex
	out   io.Writer
	isTTY bool
}

// NewBell rings on f, usually os.Stderr. Play fails with ErrNotTerminal
// when f is redirected.
func NewBell(f *os.File) *Bell {
	return &Bell{out: f, isTTY: term.IsTerminal(int(f.Fd()))}
}

// NewWriterBell rings on any writer, terminal or not.
func NewWriterBell(w io.Writer) *Bell {
	return &Bell{out: w, isTTY: true}
}

// Play implements ports.AudioSink.
func (b *Bell) Play() error {
	if !b.isTTY {
		return ErrNotTerminal
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.out, bel)
	return err
}
