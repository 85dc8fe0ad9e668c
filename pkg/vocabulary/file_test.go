package vocabulary_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/dwellkeys/internal/testutils"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/aretw0/dwellkeys/pkg/ports/tests"
	"github.com/aretw0/dwellkeys/pkg/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFileSource_Contract(t *testing.T) {
	tests.RunVocabularySourceContract(t, func(t *testing.T, entries []domain.Entry) ports.VocabularySource {
		data, err := yaml.Marshal(map[string]any{"words": entries})
		require.NoError(t, err)
		return vocabulary.NewFileSource(testutils.WriteFile(t, "words.yaml", string(data)))
	})
}

func TestFileSource_Load(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		src := vocabulary.NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrVocabularyNotFound)
	})

	t.Run("JSON by extension", func(t *testing.T) {
		path := testutils.WriteFile(t, "words.JSON", `{"words": [["casa", 10]]}`)
		entries, skipped, err := vocabulary.Load(context.Background(), vocabulary.NewFileSource(path))
		require.NoError(t, err)
		assert.Empty(t, skipped)
		assert.Equal(t, []domain.Entry{{Word: "casa", Frequency: 10}}, entries)
	})

	t.Run("Malformed document", func(t *testing.T) {
		path := testutils.WriteFile(t, "words.yaml", "words: [")
		_, err := vocabulary.NewFileSource(path).Load(context.Background())
		assert.Error(t, err)
	})
}

func TestFileSource_Watch(t *testing.T) {
	path := testutils.WriteFile(t, "words.yaml", "words: []")
	src := vocabulary.NewFileSource(path)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := src.Watch(ctx)
	require.NoError(t, err)

	// Writes to siblings are filtered out.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(`words: [["casa", 1]]`), 0o644))

	select {
	case _, ok := <-changes:
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-changes:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "channel closes with the context")
}
