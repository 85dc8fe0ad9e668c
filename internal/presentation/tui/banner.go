package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the dwellkeys banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"     _               _ _ _                    ", "#34d399"},
		{"  __| |_      _____| | | | _____ _   _ ___    ", "#2dd4bf"},
		{" / _` \\ \\ /\\ / / _ \\ | | |/ / _ \\ | | / __|   ", "#22d3ee"},
		{"| (_| |\\ V  V /  __/ | |   <  __/ |_| \\__ \\   ", "#38bdf8"},
		{" \\__,_| \\_/\\_/ \\___|_|_|_|\\_\\___|\\__, |___/   ", "#60a5fa"},
		{"                                 |___/        ", "#818cf8"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}
