package tree

import (
	"context"
	"fmt"

	"github.com/octoboard/octoboard/internal/blocks"
)

// WorkspaceTree is the typed projection of the workspace namespace: every
// live board, board template and view, title-sorted.
type WorkspaceTree struct {
	AllBlocks      []blocks.Block
	Boards         []*blocks.Board
	BoardTemplates []*blocks.Board
	Views          []*blocks.BoardView
}

// SyncWorkspaceTree fetches all boards and views and builds the projection.
// Two sequential type fetches; the workspace has no anchor block, so there is
// no not-found case.
func SyncWorkspaceTree(ctx context.Context, fetcher Fetcher) (*WorkspaceTree, error) {
	boards, err := fetcher.GetBlocksWithType(ctx, blocks.TypeBoard)
	if err != nil {
		return nil, fmt.Errorf("syncing workspace boards: %w", err)
	}
	views, err := fetcher.GetBlocksWithType(ctx, blocks.TypeView)
	if err != nil {
		return nil, fmt.Errorf("syncing workspace views: %w", err)
	}
	return BuildWorkspaceTree(append(boards, views...))
}

// BuildWorkspaceTree assembles a workspace tree from a flat block list.
func BuildWorkspaceTree(raw []blocks.Block) (*WorkspaceTree, error) {
	live := blocks.Merge(nil, raw)
	hydrated, hydrateErr := blocks.HydrateAll(live)

	tree := &WorkspaceTree{AllBlocks: live}
	for _, typed := range hydrated {
		switch block := typed.(type) {
		case *blocks.Board:
			if block.IsTemplate {
				tree.BoardTemplates = append(tree.BoardTemplates, block)
			} else {
				tree.Boards = append(tree.Boards, block)
			}
		case *blocks.BoardView:
			tree.Views = append(tree.Views, block)
		}
	}

	sortBlocksByTitle(tree.Boards)
	sortBlocksByTitle(tree.BoardTemplates)
	sortBlocksByTitle(tree.Views)
	return tree, hydrateErr
}

// IncrementalUpdate merges a delta into the tree and rebuilds, returning the
// same tree pointer when the delta carries no boards, views, or tombstones
// for blocks the tree holds.
func (t *WorkspaceTree) IncrementalUpdate(delta []blocks.Block) (*WorkspaceTree, error) {
	relevant := relevantTypes(delta, t.AllBlocks, blocks.TypeBoard, blocks.TypeView)
	if len(relevant) == 0 {
		return t, nil
	}
	return BuildWorkspaceTree(blocks.Merge(t.AllBlocks, relevant))
}
