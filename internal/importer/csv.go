package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/octoboard/octoboard/internal/blocks"
)

// FromCSV reads a CSV document and maps it onto one board: the first header
// column names the card title, every other column becomes a text property,
// and each data row becomes a card. A table view shows all properties.
func FromCSV(r io.Reader, boardTitle string) (boards, blockSet []blocks.Block, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) == 0 {
		return nil, nil, fmt.Errorf("csv header has no columns")
	}

	board := blocks.NewBoard()
	board.Block.Title = boardTitle

	propertyIDs := make([]string, len(header))
	for i, name := range header[1:] {
		property := blocks.PropertyTemplate{
			ID:   blocks.NewID(),
			Name: name,
			Type: blocks.PropTypeText,
		}
		board.AddCardProperty(property)
		propertyIDs[i+1] = property.ID
	}

	view := blocks.NewBoardView(blocks.ViewTable)
	view.Block.Title = "Table view"
	view.Block.ParentID = board.ID
	view.Block.RootID = board.ID
	view.VisiblePropertyIDs = append(view.VisiblePropertyIDs, propertyIDs[1:]...)
	if err := view.Pack(); err != nil {
		return nil, nil, fmt.Errorf("packing view: %w", err)
	}
	blockSet = append(blockSet, view.Block)

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		card := blocks.NewCard()
		card.Block.Title = row[0]
		card.Block.ParentID = board.ID
		card.Block.RootID = board.ID
		for i, value := range row {
			if i == 0 || i >= len(propertyIDs) || value == "" {
				continue
			}
			card.Properties[propertyIDs[i]] = value
		}
		if err := card.Pack(); err != nil {
			return nil, nil, fmt.Errorf("packing card from line %d: %w", line, err)
		}
		blockSet = append(blockSet, card.Block)
	}

	return []blocks.Block{board.Block}, blockSet, nil
}
