// Package predict implements the prefix prediction engine: a frequency-ranked
// trie over a fixed vocabulary that answers ranked word completions.
//
// A Predictor holds an immutable trie behind an atomic pointer. Load builds a
// complete new trie before swapping it in, so readers never observe a
// half-built tree, and Predict never mutates anything.
package predict
