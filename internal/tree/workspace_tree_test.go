package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octoboard/octoboard/internal/blocks"
)

func TestSyncWorkspaceTree(t *testing.T) {
	board := testBoard("Beta board")
	other := testBoard("Alpha board")
	template := testBoard("Template")
	template.IsTemplate = true
	require.NoError(t, template.Pack())
	view := viewOnBoard(board, "Main", blocks.ViewBoard)

	fetcher := &fakeFetcher{blocks: []blocks.Block{board.Block, other.Block, template.Block, view.Block}}

	workspace, err := SyncWorkspaceTree(context.Background(), fetcher)
	require.NoError(t, err)
	require.Len(t, workspace.Boards, 2)
	require.Equal(t, "Alpha board", workspace.Boards[0].Title)
	require.Len(t, workspace.BoardTemplates, 1)
	require.Len(t, workspace.Views, 1)
}

func TestWorkspaceTree_IncrementalUpdate(t *testing.T) {
	board := testBoard("Board")
	workspace, err := BuildWorkspaceTree([]blocks.Block{board.Block})
	require.NoError(t, err)

	// Card blocks never affect the workspace projection.
	card := cardOnBoard(board, "A card")
	same, err := workspace.IncrementalUpdate([]blocks.Block{card.Block})
	require.NoError(t, err)
	require.Same(t, workspace, same)

	// A board tombstone removes the board.
	tombstone := board.Block.Clone()
	tombstone.DeleteAt = 42
	updated, err := workspace.IncrementalUpdate([]blocks.Block{tombstone})
	require.NoError(t, err)
	require.NotSame(t, workspace, updated)
	require.Empty(t, updated.Boards)
}

func TestSyncTemplateTree(t *testing.T) {
	plain := testBoard("Plain")
	template := testBoard("Sprint template")
	template.IsTemplate = true
	require.NoError(t, template.Pack())

	fetcher := &fakeFetcher{blocks: []blocks.Block{plain.Block, template.Block}}

	templates, err := SyncTemplateTree(context.Background(), fetcher)
	require.NoError(t, err)
	require.Len(t, templates.BoardTemplates, 1)
	require.Equal(t, "Sprint template", templates.BoardTemplates[0].Title)
}

func TestTemplateTree_IncrementalUpdate(t *testing.T) {
	template := testBoard("Sprint template")
	template.IsTemplate = true
	require.NoError(t, template.Pack())

	templates, err := BuildTemplateTree([]blocks.Block{template.Block})
	require.NoError(t, err)

	view := blocks.NewBoardView(blocks.ViewBoard)
	same, err := templates.IncrementalUpdate([]blocks.Block{view.Block})
	require.NoError(t, err)
	require.Same(t, templates, same)

	renamed := template.Block.Clone()
	renamed.Title = "Renamed template"
	updated, err := templates.IncrementalUpdate([]blocks.Block{renamed})
	require.NoError(t, err)
	require.Equal(t, "Renamed template", updated.BoardTemplates[0].Title)
}
