package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/empscore/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start a read-only MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants query persisted scores, score history and runs.
Scores are never modified through the server.

Example client config:

{
  "mcpServers": {
    "empscore": {
      "command": "/path/to/empscore",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Open database
	db, err := openDB(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	// Create MCP server
	server := mcp.New(db, logger, version)

	// Handle interrupt
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	logger.Info("mcp server started")
	err = server.Start(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}
