package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octoboard/octoboard/internal/blocks"
)

func contentOnCard(card *blocks.Card, text string, order float64) *blocks.ContentBlock {
	content := blocks.NewTextBlock(text, order)
	content.Block.ParentID = card.ID
	content.Block.RootID = card.RootID
	return content
}

func TestSyncCardTree(t *testing.T) {
	card := blocks.NewCard()
	card.Block.RootID = card.ID
	comment := blocks.NewCommentBlock("first!")
	comment.Block.ParentID = card.ID
	comment.Block.RootID = card.ID
	content := contentOnCard(card, "body", 1000)

	fetcher := &fakeFetcher{blocks: []blocks.Block{card.Block, comment.Block, content.Block}}

	cardTree, err := SyncCardTree(context.Background(), fetcher, card.ID)
	require.NoError(t, err)
	require.NotNil(t, cardTree)
	require.Equal(t, card.ID, cardTree.Card.ID)
	require.Len(t, cardTree.Comments, 1)
	require.Len(t, cardTree.Contents, 1)
}

func TestSyncCardTree_NotFound(t *testing.T) {
	cardTree, err := SyncCardTree(context.Background(), &fakeFetcher{}, "missing")
	require.NoError(t, err)
	require.Nil(t, cardTree)
}

func TestCardTree_ContentsSortedByFractionalOrder(t *testing.T) {
	card := blocks.NewCard()
	first := contentOnCard(card, "a", 100)
	last := contentOnCard(card, "b", 200)
	middle := contentOnCard(card, "c", 150)

	// Insertion order deliberately differs from the order field.
	cardTree, err := BuildCardTree([]blocks.Block{card.Block, first.Block, last.Block, middle.Block}, card.ID)
	require.NoError(t, err)

	orders := cardTree.ContentOrders()
	require.Equal(t, []float64{100, 150, 200}, orders)
}

func TestCardTree_CommentsSortedByCreateAt(t *testing.T) {
	card := blocks.NewCard()
	older := blocks.NewCommentBlock("older")
	older.Block.ParentID = card.ID
	older.Block.CreateAt = 1000
	newer := blocks.NewCommentBlock("newer")
	newer.Block.ParentID = card.ID
	newer.Block.CreateAt = 2000

	cardTree, err := BuildCardTree([]blocks.Block{card.Block, newer.Block, older.Block}, card.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"older", "newer"}, []string{cardTree.Comments[0].Title, cardTree.Comments[1].Title})
}

func TestCardTree_IncrementalUpdate(t *testing.T) {
	card := blocks.NewCard()
	cardTree, err := BuildCardTree([]blocks.Block{card.Block}, card.ID)
	require.NoError(t, err)

	// Irrelevant delta returns the same reference.
	stranger := blocks.NewCard()
	same, err := cardTree.IncrementalUpdate([]blocks.Block{stranger.Block})
	require.NoError(t, err)
	require.Same(t, cardTree, same)

	// A relevant comment triggers a rebuild.
	comment := blocks.NewCommentBlock("hello")
	comment.Block.ParentID = card.ID
	updated, err := cardTree.IncrementalUpdate([]blocks.Block{comment.Block})
	require.NoError(t, err)
	require.NotSame(t, cardTree, updated)
	require.Len(t, updated.Comments, 1)
}
