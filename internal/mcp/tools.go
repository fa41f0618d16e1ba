package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools binds every board tool to the handler.
func registerTools(server *sdkmcp.Server, handler *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_boards",
		Description: "List all boards, optionally including board templates",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ListBoardsParams) (*sdkmcp.CallToolResult, ListBoardsResult, error) {
		out, err := handler.ListBoards(ctx, params)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get a board with its views and cards in display order",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetBoardParams) (*sdkmcp.CallToolResult, GetBoardResult, error) {
		out, err := handler.GetBoard(ctx, params)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_card",
		Description: "Get a card with its content blocks and comments",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetCardParams) (*sdkmcp.CallToolResult, GetCardResult, error) {
		out, err := handler.GetCard(ctx, params)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_board",
		Description: "Create a new board with a default board view",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateBoardParams) (*sdkmcp.CallToolResult, CreateBoardResult, error) {
		out, err := handler.CreateBoard(ctx, params)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_card",
		Description: "Create a card on a board, visible in the chosen view",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateCardParams) (*sdkmcp.CallToolResult, CreateCardResult, error) {
		out, err := handler.CreateCard(ctx, params)
		return nil, out, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_archive",
		Description: "Export every board and block as a board archive document",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ExportArchiveParams) (*sdkmcp.CallToolResult, ExportArchiveResult, error) {
		out, err := handler.ExportArchive(ctx, params)
		return nil, out, err
	})
}
