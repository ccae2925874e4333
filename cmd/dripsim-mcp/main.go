package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "dripsim/internal/adapters/mcp"
	"dripsim/internal/bootstrap"
	"dripsim/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("dripsim-mcp: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// stdout carries the protocol; log goes to stderr
	rt, err := bootstrap.Open(ctx, cfg, bootstrap.WithLogger(log.Default()))
	if err != nil {
		log.Fatalf("dripsim-mcp: %v", err)
	}
	defer rt.Engine.StopAutoplay()
	if err := rt.WatchTemplates(ctx); err != nil {
		log.Printf("watch: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"dripsim-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, rt.Engine)
	mcpadapter.RegisterWriteTools(mcpServer, rt.Engine)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("dripsim-mcp: %v", err)
	}
}
