package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/dwellkeys"
	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/compose"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/predict"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const layoutURI = "dwellkeys://layout"

// PredictResponse is the structured result of the predict tool.
type PredictResponse struct {
	Prefix      string   `json:"prefix" jsonschema_description:"The prefix that was completed"`
	Suggestions []string `json:"suggestions" jsonschema_description:"Completions, most frequent first"`
}

// PressResponse is the structured result of the pointer tools.
type PressResponse struct {
	Target   domain.TargetID    `json:"target" jsonschema_description:"The target the event was sent to"`
	Phase    domain.Phase       `json:"phase" jsonschema_description:"The target phase after the event"`
	Snapshot dwellkeys.Snapshot `json:"snapshot" jsonschema_description:"Keyboard state after the event"`
}

// Keyboard defines what the MCP server needs from the core.
type Keyboard interface {
	PointerEnter(id domain.TargetID)
	PointerLeave(id domain.TargetID)
	PointerDown(id domain.TargetID)
	Phase(id domain.TargetID) domain.Phase
	Predict(prefix string, limit int) []string
	Layout() compose.Layout
	Snapshot() dwellkeys.Snapshot
}

// Server exposes the keyboard as an MCP server, so an agent can type with it.
type Server struct {
	keyboard  Keyboard
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(kb Keyboard, opts ...Option) *Server {
	s := &Server{
		keyboard:  kb,
		mcpServer: server.NewMCPServer("dwellkeys-mcp", strings.TrimSpace(dwellkeys.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: predict
	predictTool := mcp.NewTool("predict",
		mcp.WithDescription("Complete a partial word from the keyboard vocabulary, most frequent first."),
		mcp.WithString("prefix", mcp.Required(), mcp.Description("The partial word")),
		mcp.WithNumber("limit", mcp.Min(0), mcp.Max(predict.MaxLimit), mcp.Description("Maximum number of suggestions (default 5)")),
		mcp.WithOutputSchema[PredictResponse](),
	)
	s.mcpServer.AddTool(predictTool, mcp.NewStructuredToolHandler(s.handlePredict))

	// TOOL: press
	pressTool := mcp.NewTool("press",
		mcp.WithDescription("Click a keyboard target: a key code (\"a\", \"ntilde\", \"space\"), \"clear\", \"copy\" or \"suggestion-N\"."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target id")),
		mcp.WithOutputSchema[PressResponse](),
	)
	s.mcpServer.AddTool(pressTool, mcp.NewStructuredToolHandler(s.handlePress))

	// TOOL: pointer
	pointerTool := mcp.NewTool("pointer",
		mcp.WithDescription("Send a raw pointer event to a target. Dwelling activates the target once the dwell time elapses."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target id")),
		mcp.WithString("event", mcp.Required(), mcp.Enum("enter", "leave", "down"), mcp.Description("Pointer event")),
		mcp.WithOutputSchema[PressResponse](),
	)
	s.mcpServer.AddTool(pointerTool, mcp.NewStructuredToolHandler(s.handlePointer))

	// TOOL: snapshot
	s.mcpServer.AddTool(mcp.NewTool("snapshot",
		mcp.WithDescription("Get the typed text, the word in progress and the current suggestions."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.keyboard.Snapshot())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handlePredict(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PredictResponse, error) {
	raw, _ := args["prefix"].(string)
	prefix, err := predict.SanitizePrefix(raw)
	if err != nil {
		return PredictResponse{}, err
	}

	limit := predict.DefaultLimit
	if n, ok := args["limit"].(float64); ok {
		if limit, err = predict.LimitFromFloat(n); err != nil {
			return PredictResponse{}, err
		}
	}

	return PredictResponse{
		Prefix:      prefix,
		Suggestions: s.keyboard.Predict(prefix, limit),
	}, nil
}

func (s *Server) handlePress(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PressResponse, error) {
	return s.send(args, s.keyboard.PointerDown)
}

func (s *Server) handlePointer(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PressResponse, error) {
	event, _ := args["event"].(string)
	switch event {
	case "enter":
		return s.send(args, s.keyboard.PointerEnter)
	case "leave":
		return s.send(args, s.keyboard.PointerLeave)
	case "down":
		return s.send(args, s.keyboard.PointerDown)
	}
	return PressResponse{}, fmt.Errorf("unknown pointer event %q", event)
}

func (s *Server) send(args map[string]interface{}, forward func(domain.TargetID)) (PressResponse, error) {
	raw, _ := args["target"].(string)
	id := domain.TargetID(raw)
	if s.keyboard.Phase(id) == domain.PhaseUnknown {
		return PressResponse{}, fmt.Errorf("unknown target %q", raw)
	}

	forward(id)
	s.logger.Debug("MCP pointer event", "target", id)

	return PressResponse{
		Target:   id,
		Phase:    s.keyboard.Phase(id),
		Snapshot: s.keyboard.Snapshot(),
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: dwellkeys://layout
	s.mcpServer.AddResource(mcp.NewResource(layoutURI, "Keyboard Layout",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.keyboard.Layout())
		if err != nil {
			return nil, fmt.Errorf("failed to encode layout: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      layoutURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
