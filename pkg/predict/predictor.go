package predict

import (
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultLimit is the number of suggestions shown by the keyboard.
const DefaultLimit = 5

// Predictor answers ranked prefix completions. It is safe for concurrent use.
type Predictor struct {
	current atomic.Pointer[trie]
	enabled atomic.Bool

	tag    language.Tag
	logger *slog.Logger
}

// Option configures the Predictor.
type Option func(*Predictor)

// WithLanguage selects the case-folding rules used for words and prefixes.
func WithLanguage(tag language.Tag) Option {
	return func(p *Predictor) {
		p.tag = tag
	}
}

// WithLogger configures a logger for the Predictor.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Predictor) {
		p.logger = logger
	}
}

// LoadReport summarizes a Load call.
type LoadReport struct {
	Loaded  int `json:"loaded"`  // Entries inserted
	Skipped int `json:"skipped"` // Malformed entries dropped
	Words   int `json:"words"`   // Distinct words in the new trie
}

// New creates an enabled Predictor with an empty vocabulary.
func New(opts ...Option) *Predictor {
	p := &Predictor{
		tag:    language.Und,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.current.Store(build(nil))
	p.enabled.Store(true)
	return p
}

// Load builds a trie from entries and atomically replaces the current one.
// Entries with a blank word or a negative frequency are skipped individually.
func (p *Predictor) Load(entries []domain.Entry) LoadReport {
	var report LoadReport
	clean := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		if isBlank(e.Word) || e.Frequency < 0 {
			report.Skipped++
			p.logger.Debug("Skipping malformed vocabulary entry", "word", e.Word, "frequency", e.Frequency)
			continue
		}
		clean = append(clean, domain.Entry{Word: p.lower(e.Word), Frequency: e.Frequency})
	}

	t := build(clean)
	p.current.Store(t)

	report.Loaded = len(clean)
	report.Words = t.words
	p.logger.Info("Vocabulary loaded", "loaded", report.Loaded, "skipped", report.Skipped, "words", report.Words)
	return report
}

// Predict returns at most limit completions of prefix, most frequent first,
// ties broken by insertion order. The result is empty (never nil) when the
// predictor is disabled, prefix is empty, limit is not positive or nothing matches.
func (p *Predictor) Predict(prefix string, limit int) []string {
	if !p.enabled.Load() || prefix == "" || limit <= 0 {
		return []string{}
	}

	from := p.current.Load().find(p.lower(prefix))
	if from == nil {
		return []string{}
	}

	cands := collect(from)
	rank(cands)
	if len(cands) > limit {
		cands = cands[:limit]
	}

	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.word
	}
	return out
}

// SetEnabled toggles suggestions without discarding the loaded vocabulary.
func (p *Predictor) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Enabled reports whether Predict returns suggestions.
func (p *Predictor) Enabled() bool {
	return p.enabled.Load()
}

// Size returns the number of distinct words currently loaded.
func (p *Predictor) Size() int {
	return p.current.Load().words
}

// lower allocates a Caser per call: Casers are not safe for concurrent use.
func (p *Predictor) lower(s string) string {
	return cases.Lower(p.tag).String(s)
}
