package compose

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/dwellkeys/pkg/domain"
)

// tabWidth is the number of spaces the tab key inserts.
const tabWidth = 4

// State is a copy of the composer's text state.
type State struct {
	Text  string `json:"text"`
	Word  string `json:"word"`
	Shift bool   `json:"shift"`
	Caps  bool   `json:"caps"`
}

// Composer applies key activations to a text buffer.
// Safe for concurrent use.
type Composer struct {
	mu     sync.Mutex
	layout Layout
	text   string
	word   string
	shift  bool
	caps   bool
}

// New creates an empty composer for layout.
func New(layout Layout) *Composer {
	return &Composer{layout: layout}
}

// Layout returns the composer's layout.
func (c *Composer) Layout() Layout {
	return c.layout
}

// Press applies the key with the given code. It reports whether the code
// belongs to the layout.
func (c *Composer) Press(code domain.TargetID) bool {
	key, ok := c.layout.Lookup(code)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch code {
	case CodeBackspace:
		c.backspace()
	case CodeEnter:
		c.text += "\n"
		c.word = ""
	case CodeSpace:
		c.text += " "
		c.word = ""
	case CodeTab:
		// The word in progress is kept so predictions stay on screen.
		c.text += strings.Repeat(" ", tabWidth)
	case CodeShiftLeft, CodeShiftRight:
		c.shift = !c.shift
	case CodeCaps:
		c.caps = !c.caps
	default:
		if key.Kind != KindChar {
			return true
		}
		ch := key.Char
		if (c.shift || c.caps) && key.ShiftChar != "" {
			ch = key.ShiftChar
		}
		if ch == "" {
			ch = key.Label
		}
		c.text += ch
		c.word += ch
		c.shift = false
	}
	return true
}

// Accept replaces the word in progress with word followed by a space.
func (c *Composer) Accept(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = strings.TrimSuffix(c.text, c.word) + word + " "
	c.word = ""
}

// Clear empties the buffer. Modifiers are left as they are.
func (c *Composer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = ""
	c.word = ""
}

// Word returns the word in progress.
func (c *Composer) Word() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.word
}

// State returns a copy of the text state.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Text: c.text, Word: c.word, Shift: c.shift, Caps: c.caps}
}

func (c *Composer) backspace() {
	if c.text == "" {
		return
	}
	r, size := utf8.DecodeLastRuneInString(c.text)
	c.text = c.text[:len(c.text)-size]

	if unicode.IsSpace(r) {
		c.word = lastWord(c.text)
		return
	}
	if c.word != "" {
		_, size = utf8.DecodeLastRuneInString(c.word)
		c.word = c.word[:len(c.word)-size]
	}
}

func lastWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || strings.TrimRightFunc(text, unicode.IsSpace) != text {
		return ""
	}
	return fields[len(fields)-1]
}
