package blocks

import "fmt"

// CardFields are the typed attributes a card stores in its fields bag.
// Property values are keyed by PropertyTemplate id; a value is a string for
// single-value properties and a string list for multiSelect.
type CardFields struct {
	Icon         string         `json:"icon"`
	IsTemplate   bool           `json:"isTemplate"`
	ContentOrder []string       `json:"contentOrder"`
	Properties   map[string]any `json:"properties"`
}

// Card is the typed facade over a card-typed block.
type Card struct {
	Block
	CardFields
}

// NewCard creates an empty card block.
func NewCard() *Card {
	card := &Card{
		Block: NewBlock(TypeCard),
		CardFields: CardFields{
			ContentOrder: []string{},
			Properties:   map[string]any{},
		},
	}
	card.mustPack()
	return card
}

// NewCardFromBlock hydrates a card facade from a raw block.
func NewCardFromBlock(b Block) (*Card, error) {
	if b.Type != TypeCard {
		return nil, fmt.Errorf("hydrating card from %q block: %w", b.Type, ErrUnknownType)
	}
	card := &Card{Block: b.Clone()}
	if err := decodeFields(card.Block.Fields, &card.CardFields); err != nil {
		return nil, fmt.Errorf("hydrating card %s: %w", b.ID, err)
	}
	if card.Properties == nil {
		card.Properties = map[string]any{}
	}
	return card, nil
}

// SetProperty assigns a property value and repacks the fields bag.
func (c *Card) SetProperty(propertyID string, value any) {
	if c.Properties == nil {
		c.Properties = map[string]any{}
	}
	c.Properties[propertyID] = value
	c.mustPack()
	c.Touch()
}

// Pack re-encodes the typed attributes into the raw fields bag.
func (c *Card) Pack() error {
	fields, err := encodeFields(c.CardFields)
	if err != nil {
		return err
	}
	c.Block.Fields = fields
	return nil
}

func (c *Card) mustPack() {
	if err := c.Pack(); err != nil {
		panic(err)
	}
}
