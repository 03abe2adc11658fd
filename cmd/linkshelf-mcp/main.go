package main

import (
	"context"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "linkshelf/internal/adapters/mcp"
	"linkshelf/internal/app"
	"linkshelf/internal/config"
	"linkshelf/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("linkshelf-mcp: %v", err)
	}

	// stdout carries the protocol, the logger writes to stderr
	lg := logger.New(cfg.LogLevel, false)

	a, err := app.New(cfg, lg)
	if err != nil {
		log.Fatalf("linkshelf-mcp: %v", err)
	}
	defer a.Close()

	mcpServer := server.NewMCPServer(
		"linkshelf-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, a)
	mcpadapter.RegisterWriteTools(mcpServer, a)

	if err := server.ServeStdio(mcpServer); err != nil {
		lg.Error("server stopped", logger.Error(err))
		a.Close()
		log.Fatalf("linkshelf-mcp: %v", err)
	}
}
