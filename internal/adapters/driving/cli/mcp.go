package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/wsamples/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the sample catalog over the Model Context Protocol",
	Long: `Start a Model Context Protocol server exposing the list_samples and
run_sample tools.

By default, the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode
  wsamples mcp

  # HTTP mode
  wsamples mcp --port 8080

MCP client configuration:
  {
    "mcpServers": {
      "wsamples": {
        "command": "/path/to/wsamples",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := requireRunner(); err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Catalog: catalogService,
		Runner:  runService,
	})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
