package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"kbrag/config"
	"kbrag/internal/usecase"
)

// Server exposes the knowledge base engine as MCP tools.
type Server struct {
	engine *usecase.Engine
	mcp    *mcp.Server
	log    *slog.Logger
}

// New creates an MCP server wired to the given engine.
func New(engine *usecase.Engine, version string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		engine: engine,
		log:    log,
	}
	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "kbrag",
		Version: version,
	}, nil)
	registerTools(s.mcp, s)
	return s
}

// RunStdio serves MCP over stdin/stdout until the context is canceled or the
// peer disconnects. All logging must already be routed to stderr.
func (s *Server) RunStdio(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// RunSSE serves MCP over HTTP/SSE with a plain /health endpoint.
func (s *Server) RunSSE(cfg config.ServerConfig) error {
	handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return s.mcp
	}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/sse", handler)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.log.Info("serving MCP over SSE", "addr", addr)
	return (&http.Server{Addr: addr, Handler: mux}).ListenAndServe()
}
