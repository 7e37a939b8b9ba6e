// Package mcp provides a Model Context Protocol server for keelson.
// It exposes read-side repository inspection as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all keelson tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "keelson",
		Version: version,
	}, nil)
	registerTools(server)
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

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all keelson tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show repository state: root, current branch, HEAD, and whether the working tree is dirty.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refs_list",
		Description: "List references matching optional patterns (e.g. refs/heads, refs/tags). Returns name, SHA, type, and upstream per ref.",
		Annotations: readOnlyAnnotations(),
	}, handleRefsList())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "notes_list",
		Description: "List commit notes under a notes ref, the default ref when none is given.",
		Annotations: readOnlyAnnotations(),
	}, handleNotesList())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "notes_show",
		Description: "Show the note text attached to a commit under a notes ref.",
		Annotations: readOnlyAnnotations(),
	}, handleNotesShow())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "notes_add",
		Description: "Attach a note to a commit, replacing any existing note under the same ref.",
		Annotations: writeAnnotations(),
	}, handleNotesAdd())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remote_list",
		Description: "List configured remotes with their fetch URLs.",
		Annotations: readOnlyAnnotations(),
	}, handleRemoteList())
}
