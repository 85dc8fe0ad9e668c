package ports

import "context"

// VocabularySource supplies the vocabulary used to build the prediction trie.
// Entries are returned raw, in insertion order, as either [word, frequency]
// pairs or {word, frequency} maps. Decoding (and skipping malformed entries)
// is the caller's job, so every source shares the same validation rules.
type VocabularySource interface {
	// Load returns all raw entries. A missing backing store is reported as
	// domain.ErrVocabularyNotFound.
	Load(ctx context.Context) ([]any, error)
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used to reload the vocabulary without restarting the host.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying vocabulary changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
