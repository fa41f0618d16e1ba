package blocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHydrate_AllKnownTypes(t *testing.T) {
	board := NewBoard()
	board.Icon = "📋"
	board.mustPack()
	view := NewBoardView(ViewTable)
	card := NewCard()
	text := NewTextBlock("hello", 1000)
	image := NewImageBlock("https://example.com/a.png", 2000)
	divider := NewDividerBlock(3000)
	comment := NewCommentBlock("a comment")

	raw := []Block{board.Block, view.Block, card.Block, text.Block, image.Block, divider.Block, comment.Block}
	hydrated, err := HydrateAll(raw)
	require.NoError(t, err)
	require.Len(t, hydrated, len(raw))

	// Input order is preserved.
	for i, typed := range hydrated {
		require.Equal(t, raw[i].ID, typed.Envelope().ID)
	}

	hydratedBoard, ok := hydrated[0].(*Board)
	require.True(t, ok)
	require.Equal(t, "📋", hydratedBoard.Icon)

	hydratedView, ok := hydrated[1].(*BoardView)
	require.True(t, ok)
	require.Equal(t, ViewTable, hydratedView.ViewType)

	hydratedImage, ok := hydrated[4].(*ContentBlock)
	require.True(t, ok)
	require.Equal(t, "https://example.com/a.png", hydratedImage.URL)
	require.Equal(t, float64(2000), hydratedImage.Order)
}

func TestHydrate_UnknownTypeFallback(t *testing.T) {
	bogus := NewBlock("checklist")
	bogus.Title = "keep me"

	typed, err := Hydrate(bogus)
	require.ErrorIs(t, err, ErrUnknownType)
	require.NotNil(t, typed)

	fallback, ok := typed.(*FallbackBlock)
	require.True(t, ok)
	require.Equal(t, bogus.ID, fallback.ID)
	require.Equal(t, "keep me", fallback.Title)
}

func TestHydrateAll_PartialFailure(t *testing.T) {
	good := NewCard()
	bogus := NewBlock("checklist")

	hydrated, err := HydrateAll([]Block{good.Block, bogus})
	require.ErrorIs(t, err, ErrUnknownType)
	require.Len(t, hydrated, 2)
	require.IsType(t, &Card{}, hydrated[0])
	require.IsType(t, &FallbackBlock{}, hydrated[1])
}

func TestHydrate_NoFieldsAliasing(t *testing.T) {
	card := NewCard()
	card.SetProperty("status", "Open")

	typed, err := NewCardFromBlock(card.Block)
	require.NoError(t, err)

	typed.SetProperty("status", "Done")
	require.Equal(t, "Open", card.Properties["status"])
	require.Equal(t, "Open", card.Block.Fields["properties"].(map[string]any)["status"])
}
