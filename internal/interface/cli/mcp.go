package cli

import (
	"github.com/spf13/cobra"

	"github.com/lmerten/studiplan/cmd/studiplan/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server",
	Long: `Run studiplan as a Model Context Protocol server over stdio.

Exposes the catalog, placement operations and the progress report as MCP
tools so assistants can inspect and edit the plan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return mcp.StartServer(cfg, slotName)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
