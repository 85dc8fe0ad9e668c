/*
Package dwellkeys is the core of an on-screen keyboard for people with limited
motor control. Keys are selected by dwelling: holding the pointer (or gaze)
over a key for a fixed time instead of pressing it. Typed words are completed
from a frequency-ranked vocabulary.

# Architecture

The Keyboard wires three parts together:

  - pkg/dwell turns pointer presence into activations. One dwell runs at a
    time across the whole surface; an activated key cools down before it can
    be dwelled again; a click always activates.
  - pkg/predict answers ranked prefix completions from a trie that can be
    swapped while readers are running.
  - pkg/compose applies activations to the text being typed.

Hosts (the HTTP surface, the MCP server, the CLI) only forward pointer events
and render snapshots. They never activate keys directly.

# Usage

	kb := dwellkeys.New(dwellkeys.WithSettings(domain.Settings{
		Dwell:        time.Second,
		Cooldown:     300 * time.Millisecond,
		DwellEnabled: true,
	}))
	if _, err := kb.Reload(ctx); err != nil {
		log.Fatal(err)
	}

	kb.PointerEnter("h") // ... one second later "h" is typed
	kb.PointerDown("o")  // clicks are immediate
	fmt.Println(kb.Snapshot().Suggestions)

# Targets

Every layout key is a target named by its code ("a", "ntilde", "space",
"backspace", ...). The "clear" target empties the text. Suggestions are
offered on "suggestion-0" to "suggestion-N"; their targets come and go as the
word in progress changes.
*/
package dwellkeys
