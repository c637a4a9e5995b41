package main

import (
	"context"

	"github.com/spf13/cobra"

	"sirocco/internal/logging"
	mcpserver "sirocco/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout. Agent frontends connect via their
MCP config and call the reporting tools directly.

The server monitors for parent process death. When the frontend disconnects
or restarts, the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger := logging.New("mcp")
	// A dead remote should not keep the tools from registering; every tool
	// reports fetch failures in its own output.
	if err := client.CheckAuth(ctx); err != nil {
		logger.Warn("Zephyr connection check failed, serving anyway", "error", err)
	}

	srv := mcpserver.NewServer(buildEngine(client, cfg), version)
	mcpserver.WatchParent(ctx, cancel)

	logger.Info("starting sirocco MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
