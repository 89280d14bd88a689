package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goalgorithm/mcp/internal/logger"
	"github.com/goalgorithm/mcp/pkg/tools"
	"github.com/goalgorithm/mcp/pkg/understat"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "goalgorithm-mcp"

	// Version of the server, reported during the MCP handshake.
	Version = "1.0.0"
)

// Options controls how the server is exposed.
type Options struct {
	// HTTPAddr, when set, serves MCP over streamable HTTP on this address
	// instead of stdio.
	HTTPAddr string
}

// New builds the MCP server with every tool registered.
func New() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Title:   "Goalgorithm match predictions",
		Version: Version,
	}, nil)

	ds := understat.GetDatasourceInstance()
	tools.AddPredictMatchTool(server, ds)
	tools.AddLeagueTableTool(server, ds)
	tools.AddListLeaguesTool(server)

	return server
}

// Run serves MCP until the context is cancelled or a termination signal
// arrives. Stdio is the default transport; Options.HTTPAddr switches to
// streamable HTTP.
func Run(ctx context.Context, opts Options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer understat.CloseDatabase()

	server := New()

	if opts.HTTPAddr != "" {
		return runHTTP(ctx, server, opts.HTTPAddr)
	}

	logger.Info("Serving MCP over stdio")
	err := server.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("Serving MCP over HTTP on", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
