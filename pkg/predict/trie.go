package predict

import (
	"slices"
	"strings"

	"github.com/aretw0/dwellkeys/pkg/domain"
)

type node struct {
	children  map[rune]*node
	terminal  bool
	word      string
	frequency int
	index     int // insertion order of the word, for tie-breaks
}

// trie is never modified after build returns.
type trie struct {
	root  *node
	words int
}

type candidate struct {
	word      string
	frequency int
	index     int
}

// build inserts already-normalized entries. A repeated word keeps its first
// insertion index and takes the latest frequency.
func build(entries []domain.Entry) *trie {
	t := &trie{root: &node{}}
	for _, e := range entries {
		n := t.root
		for _, r := range e.Word {
			child, ok := n.children[r]
			if !ok {
				if n.children == nil {
					n.children = make(map[rune]*node)
				}
				child = &node{}
				n.children[r] = child
			}
			n = child
		}
		if !n.terminal {
			n.terminal = true
			n.word = e.Word
			n.index = t.words
			t.words++
		}
		n.frequency = e.Frequency
	}
	return t
}

// find walks prefix edge by edge; nil means no word starts with prefix.
func (t *trie) find(prefix string) *node {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// collect gathers every terminal in the subtree rooted at from, using an
// explicit stack. Visit order is irrelevant: callers sort.
func collect(from *node) []candidate {
	var out []candidate
	stack := []*node{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.terminal {
			out = append(out, candidate{word: n.word, frequency: n.frequency, index: n.index})
		}
		for _, child := range n.children {
			stack = append(stack, child)
		}
	}
	return out
}

// rank orders by frequency descending, then insertion index ascending.
func rank(cands []candidate) {
	slices.SortFunc(cands, func(a, b candidate) int {
		if a.frequency != b.frequency {
			if a.frequency > b.frequency {
				return -1
			}
			return 1
		}
		return a.index - b.index
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
