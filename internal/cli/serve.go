package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/dwellkeys"
	"github.com/aretw0/dwellkeys/internal/presentation/tui"
	httpadapter "github.com/aretw0/dwellkeys/pkg/adapters/http"
	"github.com/aretw0/dwellkeys/pkg/observability"
)

// ServeOptions configures RunServe.
type ServeOptions struct {
	Options
	Addr  string // Overrides http.addr when set
	Quiet bool   // Skip the banner
}

// RunServe exposes the keyboard over HTTP until SIGINT or SIGTERM.
func RunServe(opts ServeOptions) error {
	cfg, logger, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.HTTP.Addr = opts.Addr
	}
	if !opts.Quiet {
		tui.PrintBanner(os.Stderr, dwellkeys.Version)
	}

	metrics := observability.NewMetrics()
	streams := httpadapter.NewStreamManager(logger)

	kb, err := newKeyboard(cfg, logger,
		dwellkeys.WithIndicator(streams),
		dwellkeys.WithLifecycleHooks(streams.Hooks()),
		dwellkeys.WithLifecycleHooks(metrics.Hooks()),
		dwellkeys.WithChangeListener(streams.PublishState),
		dwellkeys.WithPredictionObserver(metrics.ObservePrediction),
	)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if _, err := kb.Reload(sigCtx); err != nil {
		return err
	}
	if cfg.Vocabulary.Watch {
		go func() {
			if err := kb.Watch(sigCtx); err != nil {
				logger.Warn("Vocabulary hot reload disabled", "error", err)
			}
		}()
	}

	handler, err := httpadapter.NewHandler(kb,
		httpadapter.WithStreams(streams),
		httpadapter.WithMetrics(metrics.Handler()),
		httpadapter.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage("Serving keyboard on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-sigCtx.Done():
		logger.Info("Start shutdown", "signal", sigCtx.Signal())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage("Server stopped gracefully")
		return nil
	}
}
