// Package mcp exposes board operations as Model Context Protocol tools, so
// agents can browse and edit boards over stdio or streamable HTTP.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `Octoboard stores kanban boards as trees of blocks.
Use list_boards to discover boards, get_board for a board's views and cards,
and get_card for one card's content and comments. create_card seeds the new
card with the property values the target view's filter requires, so the card
is visible there immediately.`

// Config contains MCP server configuration.
type Config struct {
	Store  Store
	Logger *slog.Logger
}

// NewServer creates an MCP server with all board tools registered.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "octoboard",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, NewHandler(cfg.Store, cfg.Logger))
	return server
}
