// Package main provides the entry point for the keelson CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	keelsonmcp "github.com/gorewood/keelson/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run keelson as a Model Context Protocol (MCP) server over stdio.

This exposes repository inspection as MCP tools that any MCP-capable
agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "keelson": {
        "command": "keelson",
        "args": ["serve"]
      }
    }
  }

Available tools: status, refs_list, notes_list, notes_show, notes_add, remote_list`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := keelsonmcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
