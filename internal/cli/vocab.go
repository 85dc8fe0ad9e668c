package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/dwellkeys/pkg/adapters/redis"
	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/aretw0/dwellkeys/pkg/vocabulary"
)

// pushLockTTL bounds how long a crashed push can block the next one.
const pushLockTTL = 30 * time.Second

// ValidateReport summarizes a vocabulary file check.
type ValidateReport struct {
	Entries int
	Skipped []error
	Words   int
}

// RunValidate checks a vocabulary file and prints every rejected entry.
func RunValidate(ctx context.Context, w io.Writer, path string) (ValidateReport, error) {
	entries, skipped, err := vocabulary.Load(ctx, vocabulary.NewFileSource(path))
	if err != nil {
		return ValidateReport{}, err
	}

	loaded := predict.New().Load(entries)
	report := ValidateReport{Entries: len(entries) + len(skipped), Skipped: skipped, Words: loaded.Words}

	for _, err := range skipped {
		fmt.Fprintf(w, "skipped: %v\n", err)
	}
	fmt.Fprintf(w, "%s: %d entries, %d distinct words, %d skipped\n", path, report.Entries, report.Words, len(skipped))
	return report, nil
}

// PushOptions configures RunPush.
type PushOptions struct {
	Options
	Path string
}

// RunPush publishes a vocabulary file to the configured Redis list, replacing
// its contents. Concurrent pushes to the same key are serialised.
func RunPush(ctx context.Context, w io.Writer, opts PushOptions) error {
	cfg, logger, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}

	entries, skipped, err := vocabulary.Load(ctx, vocabulary.NewFileSource(opts.Path))
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		return fmt.Errorf("refusing to push %s: %d malformed entries (first: %w)", opts.Path, len(skipped), skipped[0])
	}

	r := cfg.Vocabulary.Redis
	src := redis.New(r.Addr, r.Password, r.DB, redis.WithKey(r.Key), redis.WithLogger(logger))
	defer src.Client().Close()

	locker := redis.NewLocker(src.Client(), r.Key+":")
	unlock, err := locker.Lock(ctx, "push", pushLockTTL)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			logger.Warn("Failed to release push lock", "error", err)
		}
	}()

	if err := src.Save(ctx, entries); err != nil {
		return err
	}
	fmt.Fprintf(w, "pushed %d entries to %s (db %d, key %s)\n", len(entries), r.Addr, r.DB, r.Key)
	return nil
}
