package predict_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func entries(pairs ...any) []domain.Entry {
	out := make([]domain.Entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Entry{Word: pairs[i].(string), Frequency: pairs[i+1].(int)})
	}
	return out
}

func TestPredictor_Determinism(t *testing.T) {
	p := predict.New()
	p.Load(entries("casa", 10, "caso", 10, "cama", 5))

	for i := 0; i < 20; i++ {
		assert.Equal(t, []string{"casa", "caso", "cama"}, p.Predict("ca", 5))
	}
}

func TestPredictor_Emptiness(t *testing.T) {
	p := predict.New()
	p.Load(entries("casa", 10))

	t.Run("Empty prefix", func(t *testing.T) {
		got := p.Predict("", 5)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Unmatched prefix", func(t *testing.T) {
		got := p.Predict("zz", 5)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Missing edge mid-word", func(t *testing.T) {
		assert.Empty(t, p.Predict("cx", 5))
		assert.Empty(t, p.Predict("casas", 5))
	})

	t.Run("Non-positive limit", func(t *testing.T) {
		assert.Empty(t, p.Predict("ca", 0))
		assert.Empty(t, p.Predict("ca", -1))
	})

	t.Run("Empty vocabulary", func(t *testing.T) {
		empty := predict.New()
		assert.Empty(t, empty.Predict("a", 5))
		assert.Equal(t, 0, empty.Size())
	})
}

func TestPredictor_Ranking(t *testing.T) {
	p := predict.New()
	p.Load(entries(
		"para", 9100,
		"parece", 8000,
		"pasa", 7800,
		"pasar", 7500,
		"paso", 7200,
		"pasó", 7500,
		"pasado", 7500,
	))

	assert.Equal(t, []string{"para", "parece", "pasa"}, p.Predict("pa", 3))
	assert.Equal(t, []string{"pasa", "pasar", "pasó", "pasado", "paso"}, p.Predict("pas", 10))
	assert.Equal(t, []string{"pasa", "pasar", "pasado"}, p.Predict("pasa", 5), "the prefix word itself is a match")
}

func TestPredictor_CaseInsensitive(t *testing.T) {
	p := predict.New(predict.WithLanguage(language.Spanish))
	p.Load(entries("Casa", 10, "ÁRBOL", 3))

	assert.Equal(t, []string{"casa"}, p.Predict("CA", 5))
	assert.Equal(t, []string{"árbol"}, p.Predict("Ár", 5))
}

func TestPredictor_LoadSkipsMalformed(t *testing.T) {
	p := predict.New()
	report := p.Load([]domain.Entry{
		{Word: "casa", Frequency: 10},
		{Word: "   ", Frequency: 10},
		{Word: "", Frequency: 1},
		{Word: "cama", Frequency: -5},
		{Word: "caso", Frequency: 0},
	})

	assert.Equal(t, predict.LoadReport{Loaded: 2, Skipped: 3, Words: 2}, report)
	assert.Equal(t, []string{"casa", "caso"}, p.Predict("ca", 5))
}

func TestPredictor_DuplicateWords(t *testing.T) {
	p := predict.New()
	report := p.Load(entries("que", 9500, "quien", 9500, "Que", 100, "quedar", 200))

	assert.Equal(t, 3, report.Words)
	assert.Equal(t, 4, report.Loaded)
	// "que" keeps its first insertion slot but takes the latest frequency.
	assert.Equal(t, []string{"quien", "quedar", "que"}, p.Predict("qu", 5))
}

func TestPredictor_SetEnabled(t *testing.T) {
	p := predict.New()
	p.Load(entries("casa", 10))
	require.True(t, p.Enabled())

	p.SetEnabled(false)
	assert.False(t, p.Enabled())
	assert.Empty(t, p.Predict("ca", 5))

	p.SetEnabled(true)
	assert.Equal(t, []string{"casa"}, p.Predict("ca", 5), "the trie survives suppression")
}

func TestPredictor_ReloadReplaces(t *testing.T) {
	p := predict.New()
	p.Load(entries("casa", 10))
	p.Load(entries("perro", 10))

	assert.Empty(t, p.Predict("ca", 5))
	assert.Equal(t, []string{"perro"}, p.Predict("pe", 5))

	p.Load(nil)
	assert.Empty(t, p.Predict("pe", 5))
}

func TestPredictor_DeepWordsAreIterative(t *testing.T) {
	long := strings.Repeat("a", 100_000)
	p := predict.New()
	p.Load(entries(long, 1, long+"b", 2))

	got := p.Predict("a", 5)
	require.Len(t, got, 2)
	assert.Equal(t, long+"b", got[0])
}

func TestPredictor_ConcurrentReadsDuringReload(t *testing.T) {
	p := predict.New()
	small := entries("casa", 10, "caso", 10, "cama", 5)
	large := entries("casa", 10, "caso", 10, "cama", 5, "cara", 1)
	p.Load(small)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				got := p.Predict("ca", 5)
				// Either the old or the new trie, never a partial one.
				if len(got) == 3 {
					assert.Equal(t, []string{"casa", "caso", "cama"}, got)
				} else {
					assert.Equal(t, []string{"casa", "caso", "cama", "cara"}, got)
				}
			}
		}()
	}
	for j := 0; j < 100; j++ {
		if j%2 == 0 {
			p.Load(large)
		} else {
			p.Load(small)
		}
	}
	wg.Wait()
}

func BenchmarkPredictor_Predict(b *testing.B) {
	var es []domain.Entry
	for _, a := range "abcdefghij" {
		for _, c := range "abcdefghij" {
			for _, d := range "abcdefghij" {
				es = append(es, domain.Entry{Word: string([]rune{a, c, d}), Frequency: int(a + c + d)})
			}
		}
	}
	p := predict.New()
	p.Load(es)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Predict("a", predict.DefaultLimit)
	}
}
