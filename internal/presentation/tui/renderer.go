package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// SuggestionsMarkdown lists completions of prefix, with the typed part in bold.
func SuggestionsMarkdown(prefix string, words []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Suggestions for `%s`\n\n", prefix)
	if len(words) == 0 {
		b.WriteString("_No suggestions._\n")
		return b.String()
	}
	for i, w := range words {
		head, tail := splitPrefix(w, prefix)
		fmt.Fprintf(&b, "%d. **%s**%s\n", i+1, head, tail)
	}
	return b.String()
}

// splitPrefix cuts word after as many runes as prefix has.
func splitPrefix(word, prefix string) (string, string) {
	n := len([]rune(prefix))
	runes := []rune(word)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n]), string(runes[n:])
}
