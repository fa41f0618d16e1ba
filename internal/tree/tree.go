// Package tree assembles typed, ordered projections of a flat block set and
// keeps them current as update deltas arrive.
package tree

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/octoboard/octoboard/internal/blocks"
)

// Fetcher is the external collaborator trees use to load raw blocks. It
// returns JSON-decoded, untyped records; trees hydrate them.
type Fetcher interface {
	GetSubTree(ctx context.Context, rootID string, depth int) ([]blocks.Block, error)
	GetBlocksWithType(ctx context.Context, blockType blocks.Type) ([]blocks.Block, error)
}

// subTreeDepth bounds anchor-rooted fetches: the anchor, its children and
// grandchildren cover every projection a single tree renders.
const subTreeDepth = 2

// relevantToScope filters a delta down to blocks that can affect a tree
// anchored at anchorID: the anchor itself, anything parented or rooted under
// it, and tombstones for blocks the tree currently holds.
func relevantToScope(delta []blocks.Block, anchorID string, base []blocks.Block) []blocks.Block {
	held := make(map[string]struct{}, len(base))
	for _, b := range base {
		held[b.ID] = struct{}{}
	}

	var relevant []blocks.Block
	for _, b := range delta {
		switch {
		case b.ID == anchorID, b.ParentID == anchorID, b.RootID == anchorID:
			relevant = append(relevant, b)
		case !b.IsLive():
			if _, ok := held[b.ID]; ok {
				relevant = append(relevant, b)
			}
		}
	}
	return relevant
}

// relevantTypes filters a delta down to blocks of the given types, plus
// tombstones for blocks the tree currently holds.
func relevantTypes(delta []blocks.Block, base []blocks.Block, types ...blocks.Type) []blocks.Block {
	held := make(map[string]struct{}, len(base))
	for _, b := range base {
		held[b.ID] = struct{}{}
	}

	var relevant []blocks.Block
	for _, b := range delta {
		match := false
		for _, t := range types {
			if b.Type == t {
				match = true
				break
			}
		}
		switch {
		case match:
			relevant = append(relevant, b)
		case !b.IsLive():
			if _, ok := held[b.ID]; ok {
				relevant = append(relevant, b)
			}
		}
	}
	return relevant
}

// titleSortKey lowers a title for case-insensitive comparison and strips any
// leading emoji or other decoration, so "🚀 Active" sorts as "active".
func titleSortKey(title string) string {
	trimmed := strings.TrimLeftFunc(title, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsPunct(r)
	})
	return strings.ToLower(trimmed)
}

func sortBlocksByTitle[T blocks.Hydrated](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return titleSortKey(items[i].Envelope().Title) < titleSortKey(items[j].Envelope().Title)
	})
}
