package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/dwellkeys/pkg/adapters/mcp"
)

// MCPOptions configures RunMCP.
type MCPOptions struct {
	Options
	Transport string // "stdio" or "sse"
	Port      int
}

// RunMCP serves the keyboard as MCP tools.
func RunMCP(opts MCPOptions) error {
	cfg, logger, err := loadConfig(opts.Options)
	if err != nil {
		return err
	}
	// The bell would write into the stdio transport's neighbour stream.
	cfg.Sound = false

	kb, err := newKeyboard(cfg, logger)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	if _, err := kb.Reload(sigCtx); err != nil {
		return err
	}

	srv := mcp.NewServer(kb, mcp.WithLogger(logger))

	switch opts.Transport {
	case "stdio", "":
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting dwellkeys MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting dwellkeys MCP Server (SSE)", "port", opts.Port)
		return srv.ServeSSE(sigCtx, opts.Port)
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
}
