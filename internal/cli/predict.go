package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/dwellkeys/internal/presentation/tui"
	"golang.org/x/term"
)

// PredictOptions configures RunPredict.
type PredictOptions struct {
	Options
	Prefix string
	Limit  int
	JSON   bool
}

// RunPredict prints the completions of a prefix from the configured vocabulary.
func RunPredict(ctx context.Context, w io.Writer, opts PredictOptions) error {
	cfg, logger, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	kb, err := newKeyboard(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := kb.Reload(ctx); err != nil {
		return err
	}

	limit := opts.Limit
	if limit == 0 {
		limit = cfg.SuggestionLimit
	}
	words := kb.Predict(opts.Prefix, limit)

	switch {
	case opts.JSON:
		return json.NewEncoder(w).Encode(map[string]any{
			"prefix":      opts.Prefix,
			"suggestions": words,
		})
	case isTerminal(w):
		out, err := tui.NewRenderer()(tui.SuggestionsMarkdown(opts.Prefix, words))
		if err != nil {
			return fmt.Errorf("failed to render suggestions: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
