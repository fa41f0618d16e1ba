package tree

import (
	"context"
	"fmt"
	"sort"

	"github.com/octoboard/octoboard/internal/blocks"
)

// CardTree is the typed projection of one card's blocks: its comments sorted
// by creation time and its content blocks sorted by fractional order.
type CardTree struct {
	AllBlocks []blocks.Block
	Card      *blocks.Card
	Comments  []*blocks.CommentBlock
	Contents  []*blocks.ContentBlock
}

// SyncCardTree fetches the card subtree and builds its projection. A nil
// tree with a nil error means the card was not found; callers must check.
func SyncCardTree(ctx context.Context, fetcher Fetcher, cardID string) (*CardTree, error) {
	raw, err := fetcher.GetSubTree(ctx, cardID, subTreeDepth)
	if err != nil {
		return nil, fmt.Errorf("syncing card %s: %w", cardID, err)
	}
	return BuildCardTree(raw, cardID)
}

// BuildCardTree assembles a card tree from a flat block list. The returned
// tree is usable even when err is non-nil; see BuildBoardTree.
func BuildCardTree(raw []blocks.Block, cardID string) (*CardTree, error) {
	live := blocks.Merge(nil, raw)
	hydrated, hydrateErr := blocks.HydrateAll(live)

	tree := &CardTree{AllBlocks: live}
	for _, typed := range hydrated {
		switch block := typed.(type) {
		case *blocks.Card:
			if block.ID == cardID {
				tree.Card = block
			}
		case *blocks.CommentBlock:
			tree.Comments = append(tree.Comments, block)
		case *blocks.ContentBlock:
			tree.Contents = append(tree.Contents, block)
		}
	}
	if tree.Card == nil {
		return nil, hydrateErr
	}

	sort.SliceStable(tree.Comments, func(i, j int) bool {
		return tree.Comments[i].CreateAt < tree.Comments[j].CreateAt
	})
	sort.SliceStable(tree.Contents, func(i, j int) bool {
		return tree.Contents[i].Order < tree.Contents[j].Order
	})
	return tree, hydrateErr
}

// IncrementalUpdate merges a delta into the tree and rebuilds, returning the
// same tree pointer when nothing in the delta touches this card's scope.
func (t *CardTree) IncrementalUpdate(delta []blocks.Block) (*CardTree, error) {
	relevant := relevantToScope(delta, t.Card.ID, t.AllBlocks)
	if len(relevant) == 0 {
		return t, nil
	}
	merged := blocks.Merge(t.AllBlocks, relevant)
	return BuildCardTree(merged, t.Card.ID)
}

// ContentOrders returns the sorted fractional order values of the card's
// content, ready for OrderBefore/OrderAfter insert calculations.
func (t *CardTree) ContentOrders() []float64 {
	orders := make([]float64, 0, len(t.Contents))
	for _, content := range t.Contents {
		orders = append(orders, content.Order)
	}
	return orders
}
