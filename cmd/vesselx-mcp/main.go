package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "vesselx/internal/adapters/mcp"
	"vesselx/internal/config"
	"vesselx/internal/wiring"
)

func main() {
	configFlag := flag.String("config", config.Path(), "path to the config file")
	dataFlag := flag.String("data", "", "directory holding the session database (overrides config)")
	flag.Parse()

	env, err := wiring.Open(*configFlag, wiring.Overrides{DataDir: *dataFlag})
	if err != nil {
		log.Fatalf("vesselx-mcp: %v", err)
	}
	defer env.Close()

	mcpServer := server.NewMCPServer(
		"vesselx-mcp",
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

	mcpadapter.RegisterReadTools(mcpServer, env.Store)
	mcpadapter.RegisterWriteTools(mcpServer, mcpadapter.Services{
		Store:     env.Store,
		Exporter:  env.Exporter,
		Extractor: env.Extractor,
		Strategy:  env.Config.Extractor.Strategy,
	})

	env.Log.Info().Str("db", env.Config.DatabasePath()).Msg("serving MCP on stdio")
	if err := server.ServeStdio(mcpServer, server.WithStdioContextFunc(env.Context)); err != nil {
		env.Log.Error().Err(err).Msg("stdio server stopped")
	}
}
