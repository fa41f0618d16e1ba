package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octoboard/octoboard/internal/archive"
	"github.com/octoboard/octoboard/internal/blocks"
	"github.com/octoboard/octoboard/internal/sqlite"
)

func handlerFixture(t *testing.T) (*Handler, *sqlite.BlockStore) {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	store := sqlite.NewBlockStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(store, logger), store
}

func TestHandler_CreateAndListBoards(t *testing.T) {
	handler, _ := handlerFixture(t)
	ctx := context.Background()

	created, err := handler.CreateBoard(ctx, CreateBoardParams{
		Title:       "Roadmap",
		Description: "Quarterly planning",
		Icon:        "🗺️",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.BoardID)
	require.NotEmpty(t, created.ViewID)

	listed, err := handler.ListBoards(ctx, ListBoardsParams{})
	require.NoError(t, err)
	require.Len(t, listed.Boards, 1)
	require.Equal(t, "Roadmap", listed.Boards[0].Title)
	require.Equal(t, "Quarterly planning", listed.Boards[0].Description)

	_, err = handler.CreateBoard(ctx, CreateBoardParams{})
	require.Error(t, err)
}

func TestHandler_ListBoardsExcludesTemplates(t *testing.T) {
	handler, store := handlerFixture(t)
	ctx := context.Background()

	template := blocks.NewBoard()
	template.Block.Title = "Template"
	template.IsTemplate = true
	require.NoError(t, template.Pack())
	require.NoError(t, store.InsertBlocks(ctx, []blocks.Block{template.Block}))

	listed, err := handler.ListBoards(ctx, ListBoardsParams{})
	require.NoError(t, err)
	require.Empty(t, listed.Boards)

	listed, err = handler.ListBoards(ctx, ListBoardsParams{IncludeTemplates: true})
	require.NoError(t, err)
	require.Len(t, listed.Boards, 1)
}

func TestHandler_GetBoard(t *testing.T) {
	handler, _ := handlerFixture(t)
	ctx := context.Background()

	created, err := handler.CreateBoard(ctx, CreateBoardParams{Title: "Tasks"})
	require.NoError(t, err)
	_, err = handler.CreateCard(ctx, CreateCardParams{BoardID: created.BoardID, Title: "First card"})
	require.NoError(t, err)

	board, err := handler.GetBoard(ctx, GetBoardParams{ID: created.BoardID})
	require.NoError(t, err)
	require.Equal(t, "Tasks", board.Board.Title)
	require.Len(t, board.Views, 1)
	require.Len(t, board.Cards, 1)
	require.Equal(t, "First card", board.Cards[0].Title)

	_, err = handler.GetBoard(ctx, GetBoardParams{ID: "missing"})
	require.Error(t, err)
}

func TestHandler_CreateCardSatisfiesViewFilter(t *testing.T) {
	handler, store := handlerFixture(t)
	ctx := context.Background()

	board := blocks.NewBoard()
	board.Block.Title = "Filtered"
	board.AddCardProperty(blocks.PropertyTemplate{
		ID:   "status",
		Name: "Status",
		Type: blocks.PropTypeSelect,
		Options: []blocks.PropertyOption{
			{ID: "opt-open", Value: "Open", Color: blocks.DefaultColor},
		},
	})
	require.NoError(t, board.Pack())

	view := blocks.NewBoardView(blocks.ViewBoard)
	view.Block.ParentID = board.ID
	view.Block.RootID = board.ID
	view.Filter = blocks.FilterGroup{
		Operation: blocks.OperationAnd,
		Filters: []blocks.FilterItem{{Clause: &blocks.FilterClause{
			PropertyID: "status",
			Condition:  blocks.ConditionIncludes,
			Values:     []string{"opt-open"},
		}}},
	}
	require.NoError(t, view.Pack())
	require.NoError(t, store.InsertBlocks(ctx, []blocks.Block{board.Block, view.Block}))

	created, err := handler.CreateCard(ctx, CreateCardParams{BoardID: board.ID, Title: "Visible"})
	require.NoError(t, err)

	got, err := handler.GetBoard(ctx, GetBoardParams{ID: board.ID})
	require.NoError(t, err)
	require.Len(t, got.Cards, 1)
	require.Equal(t, created.CardID, got.Cards[0].ID)
	require.Equal(t, "opt-open", got.Cards[0].Properties["status"])
}

func TestHandler_CreateCardUnknownView(t *testing.T) {
	handler, _ := handlerFixture(t)
	ctx := context.Background()

	created, err := handler.CreateBoard(ctx, CreateBoardParams{Title: "B"})
	require.NoError(t, err)

	_, err = handler.CreateCard(ctx, CreateCardParams{
		BoardID: created.BoardID,
		Title:   "c",
		ViewID:  "missing",
	})
	require.Error(t, err)
}

func TestHandler_GetCard(t *testing.T) {
	handler, store := handlerFixture(t)
	ctx := context.Background()

	created, err := handler.CreateBoard(ctx, CreateBoardParams{Title: "B"})
	require.NoError(t, err)
	cardRes, err := handler.CreateCard(ctx, CreateCardParams{BoardID: created.BoardID, Title: "Card"})
	require.NoError(t, err)

	text := blocks.NewTextBlock("hello", 1000)
	text.Block.ParentID = cardRes.CardID
	text.Block.RootID = created.BoardID
	comment := blocks.NewCommentBlock("a remark")
	comment.Block.ParentID = cardRes.CardID
	comment.Block.RootID = created.BoardID
	require.NoError(t, store.InsertBlocks(ctx, []blocks.Block{text.Block, comment.Block}))

	got, err := handler.GetCard(ctx, GetCardParams{ID: cardRes.CardID})
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, got.Contents)
	require.Len(t, got.Comments, 1)
	require.Equal(t, "a remark", got.Comments[0].Text)

	_, err = handler.GetCard(ctx, GetCardParams{ID: "missing"})
	require.Error(t, err)
}

func TestHandler_ExportArchive(t *testing.T) {
	handler, _ := handlerFixture(t)
	ctx := context.Background()

	created, err := handler.CreateBoard(ctx, CreateBoardParams{Title: "Exported"})
	require.NoError(t, err)
	_, err = handler.CreateCard(ctx, CreateCardParams{BoardID: created.BoardID, Title: "c"})
	require.NoError(t, err)

	out, err := handler.ExportArchive(ctx, ExportArchiveParams{})
	require.NoError(t, err)

	boards, blockSet, err := archive.ParseWithBoards(out.Content)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	// The default view, the card and the updated view's card order.
	require.NotEmpty(t, blockSet)
}
