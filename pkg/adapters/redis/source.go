package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the list holding the vocabulary entries.
const DefaultKey = "dwellkeys:vocabulary"

var _ ports.VocabularySource = (*Source)(nil)

// Source implements ports.VocabularySource on a Redis list of JSON entries.
// List order is insertion order.
type Source struct {
	client *backend.Client
	key    string
	logger *slog.Logger
}

// Option configures the Source.
type Option func(*Source)

// WithKey overrides the list key.
func WithKey(key string) Option {
	return func(s *Source) {
		s.key = key
	}
}

// WithLogger configures a logger for the Source.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// New creates a Source connected to addr.
func New(addr string, password string, db int, opts ...Option) *Source {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Source from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Source {
	s := &Source{
		client: client,
		key:    DefaultKey,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client exposes the underlying client, e.g. to build a Locker on it.
func (s *Source) Client() *backend.Client {
	return s.client
}

// Key returns the list key.
func (s *Source) Key() string {
	return s.key
}

// Load returns every entry of the list. A missing key is reported as
// domain.ErrVocabularyNotFound; an existing empty vocabulary cannot be
// stored in Redis, so Save writes a marker for it.
func (s *Source) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pipe := s.client.Pipeline()
	existsCmd := pipe.Exists(ctx, s.key, s.emptyKey())
	rangeCmd := pipe.LRange(ctx, s.key, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load vocabulary from redis: %w", err)
	}
	if existsCmd.Val() == 0 {
		return nil, fmt.Errorf("%w: redis key %s", domain.ErrVocabularyNotFound, s.key)
	}

	items := rangeCmd.Val()
	raw := make([]any, 0, len(items))
	for i, item := range items {
		var v any
		if err := json.Unmarshal([]byte(item), &v); err != nil {
			// Left for Decode to reject so it is counted as skipped.
			s.logger.Warn("Undecodable vocabulary item", "key", s.key, "index", i, "error", err)
			raw = append(raw, item)
			continue
		}
		raw = append(raw, v)
	}
	return raw, nil
}

// Save atomically replaces the vocabulary with entries.
func (s *Source) Save(ctx context.Context, entries []domain.Entry) error {
	values := make([]any, 0, len(entries))
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry %q: %w", e.Word, err)
		}
		values = append(values, string(data))
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key, s.emptyKey())
	if len(values) > 0 {
		pipe.RPush(ctx, s.key, values...)
	} else {
		pipe.Set(ctx, s.emptyKey(), 1, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save vocabulary to redis: %w", err)
	}

	s.logger.Debug("Vocabulary saved", "key", s.key, "entries", len(entries))
	return nil
}

func (s *Source) emptyKey() string {
	return s.key + ":empty"
}
