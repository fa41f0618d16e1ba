package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/octoboard/octoboard/internal/archive"
	"github.com/octoboard/octoboard/internal/blocks"
	"github.com/octoboard/octoboard/internal/tree"
)

// Store defines the block operations needed by MCP. It is a superset of
// tree.Fetcher so board and card trees can be synced straight off it.
type Store interface {
	GetSubTree(ctx context.Context, rootID string, depth int) ([]blocks.Block, error)
	GetBlocksWithType(ctx context.Context, blockType blocks.Type) ([]blocks.Block, error)
	GetAllBlocks(ctx context.Context) ([]blocks.Block, error)
	InsertBlocks(ctx context.Context, blockSet []blocks.Block) error
}

// Handler implements the MCP tool operations over a block store.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates a new MCP handler.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// ListBoards returns summaries of all live boards.
func (h *Handler) ListBoards(ctx context.Context, params ListBoardsParams) (ListBoardsResult, error) {
	raw, err := h.store.GetBlocksWithType(ctx, blocks.TypeBoard)
	if err != nil {
		return ListBoardsResult{}, err
	}

	result := ListBoardsResult{Boards: []BoardSummary{}}
	for _, b := range blocks.Merge(nil, raw) {
		board, err := blocks.NewBoardFromBlock(b)
		if err != nil {
			h.logger.Warn("skipping malformed board", "id", b.ID, "error", err)
			continue
		}
		if board.IsTemplate && !params.IncludeTemplates {
			continue
		}
		result.Boards = append(result.Boards, boardSummary(board))
	}
	return result, nil
}

// GetBoard returns one board with its views and cards.
func (h *Handler) GetBoard(ctx context.Context, params GetBoardParams) (GetBoardResult, error) {
	boardTree, err := tree.SyncBoardTree(ctx, h.store, params.ID)
	if err != nil {
		return GetBoardResult{}, err
	}
	if boardTree == nil {
		return GetBoardResult{}, fmt.Errorf("board not found: %s", params.ID)
	}

	result := GetBoardResult{
		Board: boardSummary(boardTree.Board),
		Views: []ViewSummary{},
		Cards: []CardSummary{},
	}
	for _, view := range boardTree.Views {
		result.Views = append(result.Views, ViewSummary{
			ID:       view.ID,
			Title:    view.Title,
			ViewType: string(view.ViewType),
		})
	}
	for _, card := range boardTree.OrderedCards() {
		result.Cards = append(result.Cards, cardSummary(card))
	}
	return result, nil
}

// GetCard returns one card with its content and comments.
func (h *Handler) GetCard(ctx context.Context, params GetCardParams) (GetCardResult, error) {
	cardTree, err := tree.SyncCardTree(ctx, h.store, params.ID)
	if err != nil {
		return GetCardResult{}, err
	}
	if cardTree == nil {
		return GetCardResult{}, fmt.Errorf("card not found: %s", params.ID)
	}

	result := GetCardResult{
		Card:     cardSummary(cardTree.Card),
		Contents: []string{},
		Comments: []CommentSummary{},
	}
	for _, content := range cardTree.Contents {
		result.Contents = append(result.Contents, content.Title)
	}
	for _, comment := range cardTree.Comments {
		result.Comments = append(result.Comments, CommentSummary{
			ID:       comment.ID,
			Text:     comment.Title,
			CreateAt: comment.CreateAt,
		})
	}
	return result, nil
}

// CreateBoard creates a board together with a default board view.
func (h *Handler) CreateBoard(ctx context.Context, params CreateBoardParams) (CreateBoardResult, error) {
	if params.Title == "" {
		return CreateBoardResult{}, fmt.Errorf("title is required")
	}

	board := blocks.NewBoard()
	board.Block.Title = params.Title
	board.Description = params.Description
	board.Icon = params.Icon
	if err := board.Pack(); err != nil {
		return CreateBoardResult{}, fmt.Errorf("packing board: %w", err)
	}

	view := blocks.NewBoardView(blocks.ViewBoard)
	view.Block.Title = "Board view"
	view.Block.ParentID = board.ID
	view.Block.RootID = board.ID

	if err := h.store.InsertBlocks(ctx, []blocks.Block{board.Block, view.Block}); err != nil {
		return CreateBoardResult{}, err
	}
	return CreateBoardResult{BoardID: board.ID, ViewID: view.ID}, nil
}

// CreateCard adds a card to a board. The card is seeded with whatever
// property values the target view's filter requires, so it is visible in
// that view right away; explicit property arguments win over seeded ones.
func (h *Handler) CreateCard(ctx context.Context, params CreateCardParams) (CreateCardResult, error) {
	if params.BoardID == "" || params.Title == "" {
		return CreateCardResult{}, fmt.Errorf("board_id and title are required")
	}

	boardTree, err := tree.SyncBoardTree(ctx, h.store, params.BoardID)
	if err != nil {
		return CreateCardResult{}, err
	}
	if boardTree == nil {
		return CreateCardResult{}, fmt.Errorf("board not found: %s", params.BoardID)
	}

	view := boardTree.ActiveView
	if params.ViewID != "" {
		view = nil
		for _, v := range boardTree.Views {
			if v.ID == params.ViewID {
				view = v
				break
			}
		}
		if view == nil {
			return CreateCardResult{}, fmt.Errorf("view not found: %s", params.ViewID)
		}
	}

	card := blocks.NewCard()
	card.Block.Title = params.Title
	card.Block.ParentID = params.BoardID
	card.Block.RootID = params.BoardID
	if view != nil {
		for id, value := range blocks.PropsSatisfyingGroup(view.Filter, boardTree.Board.CardProperties) {
			card.Properties[id] = value
		}
	}
	for id, value := range params.Properties {
		card.Properties[id] = value
	}
	if err := card.Pack(); err != nil {
		return CreateCardResult{}, fmt.Errorf("packing card: %w", err)
	}

	batch := []blocks.Block{card.Block}
	if view != nil {
		view.CardOrder = append(view.CardOrder, card.ID)
		if err := view.Pack(); err != nil {
			return CreateCardResult{}, fmt.Errorf("packing view: %w", err)
		}
		view.Touch()
		batch = append(batch, view.Block)
	}
	if err := h.store.InsertBlocks(ctx, batch); err != nil {
		return CreateCardResult{}, err
	}
	return CreateCardResult{CardID: card.ID}, nil
}

// ExportArchive serializes every live block into an archive document.
func (h *Handler) ExportArchive(ctx context.Context, _ ExportArchiveParams) (ExportArchiveResult, error) {
	all, err := h.store.GetAllBlocks(ctx)
	if err != nil {
		return ExportArchiveResult{}, err
	}

	var boards, rest []blocks.Block
	for _, b := range blocks.Merge(nil, all) {
		if b.Type == blocks.TypeBoard {
			boards = append(boards, b)
		} else {
			rest = append(rest, b)
		}
	}
	content, err := archive.Build(boards, rest)
	if err != nil {
		return ExportArchiveResult{}, fmt.Errorf("building archive: %w", err)
	}
	return ExportArchiveResult{Content: content}, nil
}

func boardSummary(board *blocks.Board) BoardSummary {
	return BoardSummary{
		ID:          board.ID,
		Title:       board.Title,
		Icon:        board.Icon,
		Description: board.Description,
		IsTemplate:  board.IsTemplate,
	}
}

func cardSummary(card *blocks.Card) CardSummary {
	return CardSummary{
		ID:         card.ID,
		Title:      card.Title,
		Icon:       card.Icon,
		Properties: card.Properties,
	}
}
