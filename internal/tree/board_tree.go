package tree

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/octoboard/octoboard/internal/blocks"
)

// BoardTree is the typed projection of one board's blocks: its views, live
// cards and card templates. AllBlocks retains the flat set the tree was built
// from so later deltas have a base to reconcile against.
type BoardTree struct {
	AllBlocks     []blocks.Block
	Board         *blocks.Board
	Views         []*blocks.BoardView
	AllCards      []*blocks.Card
	CardTemplates []*blocks.Card
	ActiveView    *blocks.BoardView
}

// SyncBoardTree fetches the board subtree and builds its projection. A nil
// tree with a nil error means the board was not found; callers must check.
func SyncBoardTree(ctx context.Context, fetcher Fetcher, boardID string) (*BoardTree, error) {
	raw, err := fetcher.GetSubTree(ctx, boardID, subTreeDepth)
	if err != nil {
		return nil, fmt.Errorf("syncing board %s: %w", boardID, err)
	}
	return BuildBoardTree(raw, boardID)
}

// BuildBoardTree assembles a board tree from a flat block list. The returned
// tree is usable even when err is non-nil: hydration failures only exclude
// the offending records from the projection, they do not abort the rebuild.
func BuildBoardTree(raw []blocks.Block, boardID string) (*BoardTree, error) {
	live := blocks.Merge(nil, raw)
	hydrated, hydrateErr := blocks.HydrateAll(live)

	tree := &BoardTree{AllBlocks: live}
	for _, typed := range hydrated {
		switch block := typed.(type) {
		case *blocks.Board:
			if block.ID == boardID {
				tree.Board = block
			}
		case *blocks.BoardView:
			tree.Views = append(tree.Views, block)
		case *blocks.Card:
			if block.IsTemplate {
				tree.CardTemplates = append(tree.CardTemplates, block)
			} else {
				tree.AllCards = append(tree.AllCards, block)
			}
		}
	}
	if tree.Board == nil {
		return nil, hydrateErr
	}

	sortBlocksByTitle(tree.Views)
	sortBlocksByTitle(tree.CardTemplates)
	if len(tree.Views) > 0 {
		tree.ActiveView = tree.Views[0]
	}
	return tree, hydrateErr
}

// IncrementalUpdate merges a delta into the tree and rebuilds. When nothing
// in the delta touches this board's scope the same tree pointer is returned;
// callers rely on that reference equality to skip downstream work.
func (t *BoardTree) IncrementalUpdate(delta []blocks.Block) (*BoardTree, error) {
	relevant := relevantToScope(delta, t.Board.ID, t.AllBlocks)
	if len(relevant) == 0 {
		return t, nil
	}

	merged := blocks.Merge(t.AllBlocks, relevant)
	rebuilt, err := BuildBoardTree(merged, t.Board.ID)
	if rebuilt == nil {
		// The board itself was tombstoned.
		return nil, err
	}
	activeID := ""
	if t.ActiveView != nil {
		activeID = t.ActiveView.ID
	}
	return rebuilt.CopyWithView(activeID), err
}

// CopyWithView returns a shallow copy of the tree with the requested view
// active. An unknown or empty view id falls back to the first view.
func (t *BoardTree) CopyWithView(viewID string) *BoardTree {
	copied := *t
	copied.ActiveView = nil
	for _, view := range copied.Views {
		if view.ID == viewID {
			copied.ActiveView = view
			break
		}
	}
	if copied.ActiveView == nil && len(copied.Views) > 0 {
		copied.ActiveView = copied.Views[0]
	}
	return &copied
}

// OrderedCards returns the live cards matching the active view's filter, in
// the view's order: the explicit manual card order when no sort options are
// set (unlisted cards appended), otherwise the sort option chain.
func (t *BoardTree) OrderedCards() []*blocks.Card {
	cards := t.AllCards
	if t.ActiveView == nil {
		return append([]*blocks.Card(nil), cards...)
	}

	filtered := make([]*blocks.Card, 0, len(cards))
	for _, card := range cards {
		if blocks.IsGroupMet(t.ActiveView.Filter, card) {
			filtered = append(filtered, card)
		}
	}

	if len(t.ActiveView.SortOptions) == 0 {
		return orderByManualOrder(filtered, t.ActiveView.CardOrder)
	}
	return t.sortCards(filtered)
}

// CardGroup is one bucket of a grouped view.
type CardGroup struct {
	Option blocks.PropertyOption
	Cards  []*blocks.Card
}

// GroupedCards buckets the ordered cards by the active view's group-by
// property. Cards without a value land in a leading group with an empty
// option id; buckets follow the property's option order.
func (t *BoardTree) GroupedCards() []CardGroup {
	ordered := t.OrderedCards()
	if t.ActiveView == nil || t.ActiveView.GroupByID == "" || t.Board == nil {
		return []CardGroup{{Cards: ordered}}
	}
	template := t.Board.CardProperty(t.ActiveView.GroupByID)
	if template == nil {
		return []CardGroup{{Cards: ordered}}
	}

	byOption := map[string][]*blocks.Card{}
	for _, card := range ordered {
		value, _ := card.Properties[template.ID].(string)
		if template.Option(value) == nil {
			value = ""
		}
		byOption[value] = append(byOption[value], card)
	}

	groups := []CardGroup{{Option: blocks.PropertyOption{Value: "No " + template.Name}, Cards: byOption[""]}}
	for _, option := range template.Options {
		groups = append(groups, CardGroup{Option: option, Cards: byOption[option.ID]})
	}
	return groups
}

func orderByManualOrder(cards []*blocks.Card, cardOrder []string) []*blocks.Card {
	position := make(map[string]int, len(cardOrder))
	for i, id := range cardOrder {
		position[id] = i
	}
	ordered := append([]*blocks.Card(nil), cards...)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, iListed := position[ordered[i].ID]
		pj, jListed := position[ordered[j].ID]
		switch {
		case iListed && jListed:
			return pi < pj
		case iListed:
			return true
		case jListed:
			return false
		default:
			return false
		}
	})
	return ordered
}

func (t *BoardTree) sortCards(cards []*blocks.Card) []*blocks.Card {
	sorted := append([]*blocks.Card(nil), cards...)
	options := t.ActiveView.SortOptions
	sort.SliceStable(sorted, func(i, j int) bool {
		for _, option := range options {
			cmp := t.compareCards(sorted[i], sorted[j], option.PropertyID)
			if cmp == 0 {
				continue
			}
			if option.Reversed {
				return cmp > 0
			}
			return cmp < 0
		}
		return titleSortKey(sorted[i].Title) < titleSortKey(sorted[j].Title)
	})
	return sorted
}

// compareCards orders two cards by one property, honoring the property type:
// numbers compare numerically, created/updated times by timestamp, selects by
// option display value, everything else as text. Empty values sort last.
func (t *BoardTree) compareCards(a, b *blocks.Card, propertyID string) int {
	template := t.Board.CardProperty(propertyID)
	if template != nil {
		switch template.Type {
		case blocks.PropTypeCreatedTime:
			return compareInt64(a.CreateAt, b.CreateAt)
		case blocks.PropTypeUpdatedTime:
			return compareInt64(a.UpdateAt, b.UpdateAt)
		}
	}

	aValue, _ := a.Properties[propertyID].(string)
	bValue, _ := b.Properties[propertyID].(string)
	if aValue == "" || bValue == "" {
		switch {
		case aValue == bValue:
			return 0
		case aValue == "":
			return 1
		default:
			return -1
		}
	}

	if template != nil {
		switch template.Type {
		case blocks.PropTypeNumber:
			aNum, aErr := strconv.ParseFloat(aValue, 64)
			bNum, bErr := strconv.ParseFloat(bValue, 64)
			if aErr == nil && bErr == nil {
				switch {
				case aNum < bNum:
					return -1
				case aNum > bNum:
					return 1
				default:
					return 0
				}
			}
		case blocks.PropTypeSelect, blocks.PropTypeMultiSelect:
			if option := template.Option(aValue); option != nil {
				aValue = option.Value
			}
			if option := template.Option(bValue); option != nil {
				bValue = option.Value
			}
		}
	}

	switch {
	case aValue < bValue:
		return -1
	case aValue > bValue:
		return 1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
