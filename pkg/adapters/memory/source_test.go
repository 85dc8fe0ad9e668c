package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dwellkeys/pkg/adapters/memory"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	contract "github.com/aretw0/dwellkeys/pkg/ports/tests"
	"github.com/aretw0/dwellkeys/pkg/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySource_Contract(t *testing.T) {
	contract.RunVocabularySourceContract(t, func(t *testing.T, entries []domain.Entry) ports.VocabularySource {
		return memory.NewSource(entries...)
	})
}

func TestMemorySource_SetNotifiesWatchers(t *testing.T) {
	src := memory.NewSource(domain.Entry{Word: "casa", Frequency: 1})
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := src.Watch(ctx)
	require.NoError(t, err)

	src.Set(domain.Entry{Word: "perro", Frequency: 2})
	src.Set(domain.Entry{Word: "gato", Frequency: 3}) // coalesced with the pending signal

	select {
	case <-changes:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	entries, _, err := vocabulary.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{{Word: "gato", Frequency: 3}}, entries)

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-changes
		return !ok
	}, time.Second, 10*time.Millisecond)

	// Set after the watcher is gone must not panic.
	src.Set()
}
