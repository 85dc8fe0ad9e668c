package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/fsnotify/fsnotify"
)

// debounceInterval absorbs the burst of events editors emit per save.
const debounceInterval = 50 * time.Millisecond

var (
	_ ports.VocabularySource = (*FileSource)(nil)
	_ ports.Watchable        = (*FileSource)(nil)
)

// FileSource reads a YAML or JSON vocabulary file.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// FileOption configures a FileSource.
type FileOption func(*FileSource)

// WithFileLogger configures a logger for the FileSource.
func WithFileLogger(logger *slog.Logger) FileOption {
	return func(s *FileSource) {
		s.logger = logger
	}
}

// NewFileSource creates a source for path. The format follows the extension
// (.json is JSON, anything else YAML).
func NewFileSource(path string, opts ...FileOption) *FileSource {
	s := &FileSource{path: path, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads and parses the file.
func (s *FileSource) Load(ctx context.Context) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrVocabularyNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return Parse(data, formatOf(s.path))
}

// Watch signals whenever the file is written, created, renamed or removed.
// The parent directory is watched so atomic-rename saves are seen too.
// The channel is closed when ctx is done.
func (s *FileSource) Watch(ctx context.Context) (<-chan struct{}, error) {
	absPath, err := filepath.Abs(s.path)
	if err != nil {
		return nil, fmt.Errorf("invalid vocabulary path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(absPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	out := make(chan struct{}, 1)
	var (
		mu   sync.Mutex
		last time.Time
	)

	go func() {
		defer close(out)
		defer fw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != absPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}

				mu.Lock()
				now := time.Now()
				skip := now.Sub(last) < debounceInterval
				if !skip {
					last = now
				}
				mu.Unlock()
				if skip {
					continue
				}

				s.logger.Debug("Vocabulary file changed", "path", absPath, "op", event.Op.String())
				select {
				case out <- struct{}{}:
				default:
					// A reload is already pending.
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Vocabulary watcher error", "error", err)
			}
		}
	}()

	return out, nil
}

func formatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
