package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/sift/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"string_analyze": {
		def:     analyzeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnalyze },
	},
	"string_create": {
		def:     createToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreate },
	},
	"string_fetch": {
		def:     fetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch },
	},
	"string_delete": {
		def:     deleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete },
	},
	"string_filter": {
		def:     filterToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFilter },
	},
	"string_query": {
		def:     queryToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleQuery },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Sift tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"sift",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)

	disabled := make(map[string]bool, len(cfg.DisabledTools))
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}
