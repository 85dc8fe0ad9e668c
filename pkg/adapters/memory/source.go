package memory

import (
	"context"
	"sync"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
)

var (
	_ ports.VocabularySource = (*Source)(nil)
	_ ports.Watchable        = (*Source)(nil)
)

// Source implements ports.VocabularySource in memory.
// Safe for concurrent use.
type Source struct {
	mu       sync.RWMutex
	entries  []domain.Entry
	watchers []chan struct{}
}

// NewSource creates a source holding entries in the given order.
func NewSource(entries ...domain.Entry) *Source {
	return &Source{entries: append([]domain.Entry(nil), entries...)}
}

// Load returns the entries as raw {word, frequency} maps.
func (s *Source) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw := make([]any, len(s.entries))
	for i, e := range s.entries {
		raw[i] = map[string]any{"word": e.Word, "frequency": e.Frequency}
	}
	return raw, nil
}

// Set replaces the entries and signals every watcher.
func (s *Source) Set(entries ...domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]domain.Entry(nil), entries...)
	for _, ch := range s.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Watch signals after every Set. The channel is closed when ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()

	return ch, nil
}
