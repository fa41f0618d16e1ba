// Package importer converts third-party board exports into archive
// documents.
package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/octoboard/octoboard/internal/blocks"
)

// TrelloExport is the subset of a Trello board export the importer reads.
type TrelloExport struct {
	Name  string       `json:"name"`
	Lists []TrelloList `json:"lists"`
	Cards []TrelloCard `json:"cards"`
}

// TrelloList is one list (column) in a Trello export.
type TrelloList struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// TrelloCard is one card in a Trello export.
type TrelloCard struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	IDList string `json:"idList"`
	Closed bool   `json:"closed"`
}

const trelloListProperty = "List"

// FromTrello reads a Trello board export and maps it onto one board: each
// open list becomes an option of a select property, each open card becomes a
// card assigned to its list's option, and card descriptions become text
// blocks. Closed (archived) lists and cards are dropped.
func FromTrello(r io.Reader) (boards, blockSet []blocks.Block, err error) {
	var export TrelloExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, nil, fmt.Errorf("decoding trello export: %w", err)
	}

	board := blocks.NewBoard()
	board.Block.Title = export.Name

	var colors blocks.ColorAllocator
	listOptions := map[string]string{}
	property := blocks.PropertyTemplate{
		ID:   blocks.NewID(),
		Name: trelloListProperty,
		Type: blocks.PropTypeSelect,
	}
	for _, list := range export.Lists {
		if list.Closed {
			continue
		}
		option := blocks.PropertyOption{
			ID:    blocks.NewID(),
			Value: list.Name,
			Color: colors.Next(),
		}
		property.Options = append(property.Options, option)
		listOptions[list.ID] = option.ID
	}
	board.AddCardProperty(property)

	view := blocks.NewBoardView(blocks.ViewBoard)
	view.Block.Title = "Board view"
	view.Block.ParentID = board.ID
	view.Block.RootID = board.ID
	view.GroupByID = property.ID
	if err := view.Pack(); err != nil {
		return nil, nil, fmt.Errorf("packing view: %w", err)
	}
	blockSet = append(blockSet, view.Block)

	for _, trelloCard := range export.Cards {
		if trelloCard.Closed {
			continue
		}
		card := blocks.NewCard()
		card.Block.Title = trelloCard.Name
		card.Block.ParentID = board.ID
		card.Block.RootID = board.ID
		if optionID, ok := listOptions[trelloCard.IDList]; ok {
			card.Properties[property.ID] = optionID
		}

		if trelloCard.Desc != "" {
			text := blocks.NewTextBlock(trelloCard.Desc, 1000)
			text.Block.ParentID = card.ID
			text.Block.RootID = board.ID
			card.ContentOrder = append(card.ContentOrder, text.ID)
			blockSet = append(blockSet, text.Block)
		}
		if err := card.Pack(); err != nil {
			return nil, nil, fmt.Errorf("packing card %s: %w", trelloCard.Name, err)
		}
		blockSet = append(blockSet, card.Block)
	}

	return []blocks.Block{board.Block}, blockSet, nil
}
