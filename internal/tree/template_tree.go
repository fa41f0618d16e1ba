package tree

import (
	"context"
	"fmt"

	"github.com/octoboard/octoboard/internal/blocks"
)

// TemplateTree is the typed projection of the global template namespace:
// every live board template, title-sorted.
type TemplateTree struct {
	AllBlocks      []blocks.Block
	BoardTemplates []*blocks.Board
}

// SyncTemplateTree fetches all boards and keeps the templates.
func SyncTemplateTree(ctx context.Context, fetcher Fetcher) (*TemplateTree, error) {
	boards, err := fetcher.GetBlocksWithType(ctx, blocks.TypeBoard)
	if err != nil {
		return nil, fmt.Errorf("syncing templates: %w", err)
	}
	return BuildTemplateTree(boards)
}

// BuildTemplateTree assembles a template tree from a flat block list.
func BuildTemplateTree(raw []blocks.Block) (*TemplateTree, error) {
	live := blocks.Merge(nil, raw)
	hydrated, hydrateErr := blocks.HydrateAll(live)

	tree := &TemplateTree{AllBlocks: live}
	for _, typed := range hydrated {
		if board, ok := typed.(*blocks.Board); ok && board.IsTemplate {
			tree.BoardTemplates = append(tree.BoardTemplates, board)
		}
	}
	sortBlocksByTitle(tree.BoardTemplates)
	return tree, hydrateErr
}

// IncrementalUpdate merges a delta into the tree and rebuilds, returning the
// same tree pointer when the delta carries no boards and no tombstones for
// blocks the tree holds.
func (t *TemplateTree) IncrementalUpdate(delta []blocks.Block) (*TemplateTree, error) {
	relevant := relevantTypes(delta, t.AllBlocks, blocks.TypeBoard)
	if len(relevant) == 0 {
		return t, nil
	}
	return BuildTemplateTree(blocks.Merge(t.AllBlocks, relevant))
}
