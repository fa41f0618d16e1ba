package blocks

import "fmt"

// PropertyType enumerates the card attribute kinds a board can define.
type PropertyType string

const (
	PropTypeText        PropertyType = "text"
	PropTypeNumber      PropertyType = "number"
	PropTypeSelect      PropertyType = "select"
	PropTypeMultiSelect PropertyType = "multiSelect"
	PropTypeDate        PropertyType = "date"
	PropTypePerson      PropertyType = "person"
	PropTypeFile        PropertyType = "file"
	PropTypeCheckbox    PropertyType = "checkbox"
	PropTypeURL         PropertyType = "url"
	PropTypeEmail       PropertyType = "email"
	PropTypePhone       PropertyType = "phone"
	PropTypeCreatedTime PropertyType = "createdTime"
	PropTypeCreatedBy   PropertyType = "createdBy"
	PropTypeUpdatedTime PropertyType = "updatedTime"
	PropTypeUpdatedBy   PropertyType = "updatedBy"
)

// PropertyOption is one selectable value of a select/multiSelect property.
type PropertyOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// PropertyTemplate is a board-level schema definition for a card attribute.
type PropertyTemplate struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Type    PropertyType     `json:"type"`
	Options []PropertyOption `json:"options"`
}

// Option returns the option with the given id, or nil.
func (t *PropertyTemplate) Option(id string) *PropertyOption {
	for i := range t.Options {
		if t.Options[i].ID == id {
			return &t.Options[i]
		}
	}
	return nil
}

// BoardFields are the typed attributes a board stores in its fields bag.
type BoardFields struct {
	Icon            string             `json:"icon"`
	Description     string             `json:"description"`
	ShowDescription bool               `json:"showDescription"`
	IsTemplate      bool               `json:"isTemplate"`
	CardProperties  []PropertyTemplate `json:"cardProperties"`
}

// Board is the typed facade over a board-typed block.
type Board struct {
	Block
	BoardFields
}

// NewBoard creates an empty board block.
func NewBoard() *Board {
	board := &Board{Block: NewBlock(TypeBoard)}
	board.Block.RootID = board.Block.ID
	board.mustPack()
	return board
}

// NewBoardFromBlock hydrates a board facade from a raw block.
func NewBoardFromBlock(b Block) (*Board, error) {
	if b.Type != TypeBoard {
		return nil, fmt.Errorf("hydrating board from %q block: %w", b.Type, ErrUnknownType)
	}
	board := &Board{Block: b.Clone()}
	if err := decodeFields(board.Block.Fields, &board.BoardFields); err != nil {
		return nil, fmt.Errorf("hydrating board %s: %w", b.ID, err)
	}
	return board, nil
}

// CardProperty returns the property template with the given id, or nil.
func (b *Board) CardProperty(id string) *PropertyTemplate {
	for i := range b.CardProperties {
		if b.CardProperties[i].ID == id {
			return &b.CardProperties[i]
		}
	}
	return nil
}

// AddCardProperty appends a property template and repacks the fields bag.
func (b *Board) AddCardProperty(template PropertyTemplate) {
	b.CardProperties = append(b.CardProperties, template)
	b.mustPack()
	b.Touch()
}

// Pack re-encodes the typed attributes into the raw fields bag. Call after
// mutating any BoardFields member directly.
func (b *Board) Pack() error {
	fields, err := encodeFields(b.BoardFields)
	if err != nil {
		return err
	}
	b.Block.Fields = fields
	return nil
}

func (b *Board) mustPack() {
	if err := b.Pack(); err != nil {
		panic(err)
	}
}
