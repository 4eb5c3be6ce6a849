// Package main provides the entry point for the xctemplates CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/neoighodaro/xctemplates/internal/config"
	xtmcp "github.com/neoighodaro/xctemplates/internal/mcp"
	"github.com/neoighodaro/xctemplates/internal/xcode"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run xctemplates as a Model Context Protocol (MCP) server over stdio.

This exposes read-only inspection of the template tree and backup store to
any MCP-capable agent environment. Nothing destructive is reachable over
MCP; installs and rollbacks stay on the interactive CLI.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "xctemplates": {
        "command": "xctemplates",
        "args": ["serve"]
      }
    }
  }

Available tools: status, preview, backups`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := config.LoadFile()
			if err != nil {
				return err
			}
			run := config.NewRun(file, "", directory, xcode.DefaultTemplatesRoot, false, false)
			server := xtmcp.NewServer(buildVersion(), run)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Template root to expose (defaults to the Xcode installation)")
	return cmd
}
