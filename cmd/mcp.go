package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperscout/paperscout/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run paperscout as an MCP server over stdio",
	Long: `Exposes paper search, topic summarization, and the paper registry as
MCP tools over stdio, for use by MCP-capable AI agents. All diagnostics
go to stderr; stdout carries the protocol.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger()
	defer logger.Sync()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return fmt.Errorf("opening paper registry: %w", err)
	}
	defer reg.Close()

	ag, err := newAgent(cfg, store, logger)
	if err != nil {
		return err
	}

	mcp.Version = version
	return mcp.NewServer(store, ag, reg).Serve()
}
