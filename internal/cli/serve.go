package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kbrag/config"
	"kbrag/internal/server"
)

var serveTransport string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the knowledge base as MCP tools",
	Long: `Expose search_knowledge_base, knowledge_base_stats and
reload_knowledge_base as MCP tools, over stdio or SSE.

Examples:
  kbrag serve                  # stdio, for MCP client integration
  kbrag serve -t sse           # HTTP/SSE with a /health endpoint`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveTransport, "transport", "t", "", "transport: stdio or sse (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport := cfg.Server.Transport
	if serveTransport != "" {
		transport = serveTransport
	}

	// stdout carries the stdio wire protocol, so logs go to stderr.
	log := config.NewLogger(os.Stderr, cfg.Logging)

	engine, cleanup := newEngine(cfg, rootDir, log)
	defer cleanup()

	srv := server.New(engine, version, log)

	switch transport {
	case "", "stdio":
		return srv.RunStdio(cmd.Context())
	case "sse":
		return srv.RunSSE(cfg.Server)
	default:
		return fmt.Errorf("unknown transport %q (expected stdio or sse)", transport)
	}
}
