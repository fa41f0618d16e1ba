package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octoboard/octoboard/internal/blocks"
)

type fakeFetcher struct {
	blocks []blocks.Block
}

func (f *fakeFetcher) GetSubTree(_ context.Context, rootID string, _ int) ([]blocks.Block, error) {
	var result []blocks.Block
	for _, b := range f.blocks {
		if b.ID == rootID || b.ParentID == rootID || b.RootID == rootID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeFetcher) GetBlocksWithType(_ context.Context, blockType blocks.Type) ([]blocks.Block, error) {
	var result []blocks.Block
	for _, b := range f.blocks {
		if b.Type == blockType {
			result = append(result, b)
		}
	}
	return result, nil
}

func testBoard(title string) *blocks.Board {
	board := blocks.NewBoard()
	board.Block.Title = title
	return board
}

func viewOnBoard(board *blocks.Board, title string, viewType blocks.ViewType) *blocks.BoardView {
	view := blocks.NewBoardView(viewType)
	view.Block.Title = title
	view.Block.ParentID = board.ID
	view.Block.RootID = board.ID
	return view
}

func cardOnBoard(board *blocks.Board, title string) *blocks.Card {
	card := blocks.NewCard()
	card.Block.Title = title
	card.Block.ParentID = board.ID
	card.Block.RootID = board.ID
	return card
}

func TestSyncBoardTree(t *testing.T) {
	board := testBoard("Roadmap")
	view := viewOnBoard(board, "Main", blocks.ViewBoard)
	card := cardOnBoard(board, "Ship it")
	template := cardOnBoard(board, "Card template")
	template.IsTemplate = true
	require.NoError(t, template.Pack())

	fetcher := &fakeFetcher{blocks: []blocks.Block{board.Block, view.Block, card.Block, template.Block}}

	tree, err := SyncBoardTree(context.Background(), fetcher, board.ID)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Equal(t, board.ID, tree.Board.ID)
	require.Len(t, tree.Views, 1)
	require.Len(t, tree.AllCards, 1)
	require.Len(t, tree.CardTemplates, 1)
	require.Equal(t, view.ID, tree.ActiveView.ID)
}

func TestSyncBoardTree_NotFound(t *testing.T) {
	fetcher := &fakeFetcher{}
	tree, err := SyncBoardTree(context.Background(), fetcher, "missing")
	require.NoError(t, err)
	require.Nil(t, tree)
}

func TestBoardTree_ViewsSortedEmojiStripped(t *testing.T) {
	board := testBoard("Roadmap")
	maybe := viewOnBoard(board, "🤔 Maybe", blocks.ViewTable)
	active := viewOnBoard(board, "🚀 Active", blocks.ViewBoard)

	tree, err := BuildBoardTree([]blocks.Block{maybe.Block, board.Block, active.Block}, board.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"🚀 Active", "🤔 Maybe"}, []string{tree.Views[0].Title, tree.Views[1].Title})
	require.Equal(t, "🚀 Active", tree.ActiveView.Title)
}

func TestBoardTree_IncrementalUpdateReferenceStability(t *testing.T) {
	board := testBoard("Roadmap")
	tree, err := BuildBoardTree([]blocks.Block{board.Block}, board.ID)
	require.NoError(t, err)

	other := testBoard("Unrelated")
	strayCard := blocks.NewCard()
	strayCard.Block.ParentID = other.ID
	strayCard.Block.RootID = other.ID
	strayTombstone := blocks.NewBlock(blocks.TypeText)
	strayTombstone.DeleteAt = 99

	same, err := tree.IncrementalUpdate([]blocks.Block{other.Block, strayCard.Block, strayTombstone})
	require.NoError(t, err)
	require.Same(t, tree, same)
}

func TestBoardTree_IncrementalUpdateAppliesDelta(t *testing.T) {
	board := testBoard("Roadmap")
	card := cardOnBoard(board, "Ship it")
	tree, err := BuildBoardTree([]blocks.Block{board.Block, card.Block}, board.ID)
	require.NoError(t, err)

	renamed := card.Block.Clone()
	renamed.Title = "Shipped"
	newCard := cardOnBoard(board, "Next up")
	tombstone := card.Block.Clone()

	updated, err := tree.IncrementalUpdate([]blocks.Block{renamed, newCard.Block})
	require.NoError(t, err)
	require.NotSame(t, tree, updated)
	require.Len(t, updated.AllCards, 2)

	tombstone.DeleteAt = 42
	updated, err = updated.IncrementalUpdate([]blocks.Block{tombstone})
	require.NoError(t, err)
	require.Len(t, updated.AllCards, 1)
	require.Equal(t, "Next up", updated.AllCards[0].Title)
}

func TestBoardTree_RebuildEqualsIncrementalReplay(t *testing.T) {
	board := testBoard("Roadmap")
	view := viewOnBoard(board, "Main", blocks.ViewBoard)
	cardA := cardOnBoard(board, "Alpha")
	cardB := cardOnBoard(board, "Beta")
	all := []blocks.Block{board.Block, view.Block, cardA.Block, cardB.Block}

	direct, err := BuildBoardTree(all, board.ID)
	require.NoError(t, err)

	seed, err := BuildBoardTree([]blocks.Block{board.Block}, board.ID)
	require.NoError(t, err)
	replayed, err := seed.IncrementalUpdate(all)
	require.NoError(t, err)

	require.Equal(t, direct.Board, replayed.Board)
	require.Equal(t, direct.Views, replayed.Views)
	require.Equal(t, direct.AllCards, replayed.AllCards)
}

func TestBoardTree_CopyWithView(t *testing.T) {
	board := testBoard("Roadmap")
	first := viewOnBoard(board, "Alpha", blocks.ViewBoard)
	second := viewOnBoard(board, "Beta", blocks.ViewTable)

	tree, err := BuildBoardTree([]blocks.Block{board.Block, first.Block, second.Block}, board.ID)
	require.NoError(t, err)

	withSecond := tree.CopyWithView(second.ID)
	require.Equal(t, second.ID, withSecond.ActiveView.ID)
	// Original tree is untouched.
	require.Equal(t, first.ID, tree.ActiveView.ID)

	fallback := tree.CopyWithView("no-such-view")
	require.Equal(t, first.ID, fallback.ActiveView.ID)
}

func TestBoardTree_OrderedCardsFilterAndManualOrder(t *testing.T) {
	board := testBoard("Roadmap")
	view := viewOnBoard(board, "Main", blocks.ViewBoard)
	done := cardOnBoard(board, "Done card")
	done.SetProperty("status", "done")
	open := cardOnBoard(board, "Open card")
	open.SetProperty("status", "open")
	alsoDone := cardOnBoard(board, "Also done")
	alsoDone.SetProperty("status", "done")

	view.Filter = blocks.FilterGroup{Operation: blocks.OperationAnd, Filters: []blocks.FilterItem{
		{Clause: &blocks.FilterClause{PropertyID: "status", Condition: blocks.ConditionIncludes, Values: []string{"done"}}},
	}}
	view.CardOrder = []string{alsoDone.ID, done.ID}
	require.NoError(t, view.Pack())

	tree, err := BuildBoardTree([]blocks.Block{board.Block, view.Block, done.Block, open.Block, alsoDone.Block}, board.ID)
	require.NoError(t, err)

	ordered := tree.OrderedCards()
	require.Len(t, ordered, 2)
	require.Equal(t, alsoDone.ID, ordered[0].ID)
	require.Equal(t, done.ID, ordered[1].ID)
}

func TestBoardTree_OrderedCardsSortOptions(t *testing.T) {
	board := testBoard("Roadmap")
	board.CardProperties = []blocks.PropertyTemplate{{ID: "estimate", Name: "Estimate", Type: blocks.PropTypeNumber}}
	require.NoError(t, board.Pack())

	view := viewOnBoard(board, "Main", blocks.ViewTable)
	view.SortOptions = []blocks.SortOption{{PropertyID: "estimate", Reversed: true}}
	require.NoError(t, view.Pack())

	small := cardOnBoard(board, "Small")
	small.SetProperty("estimate", "2")
	large := cardOnBoard(board, "Large")
	large.SetProperty("estimate", "10")
	unset := cardOnBoard(board, "Unset")

	tree, err := BuildBoardTree([]blocks.Block{board.Block, view.Block, small.Block, large.Block, unset.Block}, board.ID)
	require.NoError(t, err)

	ordered := tree.OrderedCards()
	require.Equal(t, []string{large.ID, small.ID, unset.ID}, []string{ordered[0].ID, ordered[1].ID, ordered[2].ID})
}

func TestBoardTree_GroupedCards(t *testing.T) {
	board := testBoard("Roadmap")
	board.CardProperties = []blocks.PropertyTemplate{{
		ID:   "status",
		Name: "Status",
		Type: blocks.PropTypeSelect,
		Options: []blocks.PropertyOption{
			{ID: "opt-open", Value: "Open", Color: blocks.DefaultColor},
			{ID: "opt-done", Value: "Done", Color: blocks.DefaultColor},
		},
	}}
	require.NoError(t, board.Pack())

	view := viewOnBoard(board, "Main", blocks.ViewBoard)
	view.GroupByID = "status"
	require.NoError(t, view.Pack())

	open := cardOnBoard(board, "In flight")
	open.SetProperty("status", "opt-open")
	loose := cardOnBoard(board, "Unsorted")

	tree, err := BuildBoardTree([]blocks.Block{board.Block, view.Block, open.Block, loose.Block}, board.ID)
	require.NoError(t, err)

	groups := tree.GroupedCards()
	require.Len(t, groups, 3)
	require.Len(t, groups[0].Cards, 1) // no-value bucket
	require.Equal(t, loose.ID, groups[0].Cards[0].ID)
	require.Equal(t, "opt-open", groups[1].Option.ID)
	require.Len(t, groups[1].Cards, 1)
	require.Empty(t, groups[2].Cards)
}
