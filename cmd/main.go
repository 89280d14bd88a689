package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/goalgorithm/mcp/internal/logger"
	"github.com/goalgorithm/mcp/pkg/server"
	"github.com/goalgorithm/mcp/pkg/understat"
)

func main() {
	httpAddr := flag.String("http", "", "serve MCP over HTTP on this address instead of stdio")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger.SetShowDateTime(true)
	if *debug {
		logger.SetLevel(logger.DEBUG)
	}

	if err := understat.ValidateConfig(understat.Config); err != nil {
		logger.Fatal("Invalid configuration:", err)
	}

	// On stdio the transport owns stdout and clients rarely surface
	// stderr, so logs go to a file under the assets directory.
	if *httpAddr == "" {
		if err := os.MkdirAll(understat.Config.AssetsPath, 0755); err == nil {
			logPath := filepath.Join(understat.Config.AssetsPath, "goalgorithm.log")
			if err := logger.SetLogFile(logPath); err != nil {
				logger.Warn("Could not open log file, logging to stderr", err)
			}
		}
	}

	logger.Info("Starting goalgorithm-mcp", server.Version)

	if flag.Arg(0) == "refresh" {
		logger.Info("Refreshing league data for all supported leagues...")
		ds := understat.GetDatasourceInstance()
		if err := ds.RefreshAll(); err != nil {
			logger.Error("Refresh failed:", err)
			understat.CloseDatabase()
			os.Exit(1)
		}
		logger.Info("League data refresh completed")
		understat.CloseDatabase()
		return
	}

	if err := server.Run(context.Background(), server.Options{HTTPAddr: *httpAddr}); err != nil {
		logger.Error("Server error:", err)
		os.Exit(1)
	}

	logger.Info("MCP server shutting down")
}
