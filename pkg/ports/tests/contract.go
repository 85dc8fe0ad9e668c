package tests

import (
	"context"
	"testing"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/aretw0/dwellkeys/pkg/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SourceFactory creates a source seeded with the given entries.
type SourceFactory func(t *testing.T, entries []domain.Entry) ports.VocabularySource

// RunVocabularySourceContract verifies that an adapter complies with
// ports.VocabularySource.
func RunVocabularySourceContract(t *testing.T, newSource SourceFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("Preserves insertion order", func(t *testing.T) {
		seed := []domain.Entry{
			{Word: "zapato", Frequency: 1},
			{Word: "casa", Frequency: 10},
			{Word: "árbol", Frequency: 5},
			{Word: "casa", Frequency: 7},
		}
		src := newSource(t, seed)

		got, skipped, err := vocabulary.Load(ctx, src)
		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, seed, got)
	})

	t.Run("Empty vocabulary", func(t *testing.T) {
		src := newSource(t, nil)

		raw, err := src.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, raw)
	})

	t.Run("Repeated loads are stable", func(t *testing.T) {
		seed := []domain.Entry{{Word: "que", Frequency: 9500}, {Word: "quien", Frequency: 9000}}
		src := newSource(t, seed)

		first, _, err := vocabulary.Load(ctx, src)
		require.NoError(t, err)
		second, _, err := vocabulary.Load(ctx, src)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		src := newSource(t, []domain.Entry{{Word: "casa", Frequency: 1}})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := src.Load(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
