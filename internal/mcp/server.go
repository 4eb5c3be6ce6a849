// Package mcp provides a Model Context Protocol server for xctemplates.
// It exposes read-only inspection of the template tree and backup store as
// MCP tools; nothing destructive is reachable over MCP.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/neoighodaro/xctemplates/internal/config"
)

// NewServer creates an MCP server with all xctemplates tools registered.
func NewServer(version string, run config.Run) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "xctemplates",
		Version: version,
	}, nil)
	registerTools(server, run)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all xctemplates tools to the server.
func registerTools(server *mcp.Server, run config.Run) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show the environment state: template root, marker counts, backup store, and macro config presence.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(run))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview",
		Description: "Classify template files under a directory by FILEHEADER marker form without modifying anything.",
		Annotations: readOnlyAnnotations(),
	}, handlePreview(run))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "backups",
		Description: "List backup sets in the store, oldest first, with manifest presence.",
		Annotations: readOnlyAnnotations(),
	}, handleBackups(run))
}
