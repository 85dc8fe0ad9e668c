// Package clipboard copies the typed text out of the keyboard.
package clipboard

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when there is no terminal to receive the
// escape sequence.
var ErrNotTerminal = errors.New("clipboard: output is not a terminal")

var _ ports.ClipboardSink = (*OSC52)(nil)

// OSC52 sets the system clipboard through the terminal's OSC 52 escape
// sequence, so it also works over SSH.
type OSC52 struct {
	mu    sync.Mutex
	out   *termenv.Output
	isTTY bool
}

// NewOSC52 writes to f, usually os.Stderr. Copy fails with ErrNotTerminal
// when f is redirected.
func NewOSC52(f *os.File) *OSC52 {
	return &OSC52{out: termenv.NewOutput(f), isTTY: term.IsTerminal(int(f.Fd()))}
}

// NewWriterOSC52 writes the sequence to any writer, terminal or not.
func NewWriterOSC52(w io.Writer) *OSC52 {
	return &OSC52{out: termenv.NewOutput(w), isTTY: true}
}

// Copy implements ports.ClipboardSink.
func (c *OSC52) Copy(text string) error {
	if !c.isTTY {
		return ErrNotTerminal
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.Copy(text)
	return nil
}
