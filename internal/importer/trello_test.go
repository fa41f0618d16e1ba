package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/octoboard/octoboard/internal/blocks"
)

const trelloFixture = `{
	"name": "Project Tasks",
	"lists": [
		{"id": "l1", "name": "To Do", "closed": false},
		{"id": "l2", "name": "Doing", "closed": false},
		{"id": "l3", "name": "Old", "closed": true}
	],
	"cards": [
		{"id": "c1", "name": "Write docs", "desc": "Start with the readme", "idList": "l1", "closed": false},
		{"id": "c2", "name": "Ship it", "desc": "", "idList": "l2", "closed": false},
		{"id": "c3", "name": "Forgotten", "desc": "", "idList": "l3", "closed": true}
	]
}`

func TestFromTrello(t *testing.T) {
	boards, blockSet, err := FromTrello(strings.NewReader(trelloFixture))
	require.NoError(t, err)
	require.Len(t, boards, 1)

	board, err := blocks.NewBoardFromBlock(boards[0])
	require.NoError(t, err)
	require.Equal(t, "Project Tasks", board.Title)
	require.Len(t, board.CardProperties, 1)

	property := board.CardProperties[0]
	require.Equal(t, "List", property.Name)
	require.Equal(t, blocks.PropTypeSelect, property.Type)
	// The closed list is dropped.
	require.Len(t, property.Options, 2)
	require.Equal(t, "To Do", property.Options[0].Value)

	var views []*blocks.BoardView
	var cards []*blocks.Card
	var texts []blocks.Block
	for _, b := range blockSet {
		switch b.Type {
		case blocks.TypeView:
			view, err := blocks.NewBoardViewFromBlock(b)
			require.NoError(t, err)
			views = append(views, view)
		case blocks.TypeCard:
			card, err := blocks.NewCardFromBlock(b)
			require.NoError(t, err)
			cards = append(cards, card)
		case blocks.TypeText:
			texts = append(texts, b)
		}
	}

	require.Len(t, views, 1)
	require.Equal(t, property.ID, views[0].GroupByID)

	require.Len(t, cards, 2)
	require.Equal(t, "Write docs", cards[0].Title)
	require.Equal(t, property.Options[0].ID, cards[0].Properties[property.ID])

	// Only the card with a description gets a text block.
	require.Len(t, texts, 1)
	require.Equal(t, "Start with the readme", texts[0].Title)
	require.Equal(t, cards[0].ID, texts[0].ParentID)
	require.Equal(t, []string{texts[0].ID}, cards[0].ContentOrder)
}

func TestFromTrello_Malformed(t *testing.T) {
	_, _, err := FromTrello(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestFromTrello_DistinctOptionColors(t *testing.T) {
	boards, _, err := FromTrello(strings.NewReader(trelloFixture))
	require.NoError(t, err)

	board, err := blocks.NewBoardFromBlock(boards[0])
	require.NoError(t, err)
	options := board.CardProperties[0].Options
	require.NotEqual(t, options[0].Color, options[1].Color)
}
