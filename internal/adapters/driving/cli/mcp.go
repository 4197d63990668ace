package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bumpbook/internal/adapters/driving/mcp"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:         "serve",
	Annotations: needsKnowledge,
	Short:       "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can retrieve
knowledge sections, ask grounded questions and check medication safety.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  bumpbook mcp serve

  # HTTP mode
  bumpbook mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "bumpbook": {
        "command": "/path/to/bumpbook",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Retrieval: retrievalService,
		Chat:      chatService,
		Lookup:    lookupService,
		Index:     indexService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if indexService != nil {
		go func() {
			status := indexService.Build(ctx)
			logger.Info("Index build finished: %s", status.State)
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
