package blocks

import "fmt"

// ViewType selects how a board view lays out its cards.
type ViewType string

const (
	ViewBoard   ViewType = "board"
	ViewTable   ViewType = "table"
	ViewGallery ViewType = "gallery"
)

// SortOption is one entry in a view's sort chain.
type SortOption struct {
	PropertyID string `json:"propertyId"`
	Reversed   bool   `json:"reversed"`
}

// BoardViewFields are the typed attributes a view stores in its fields bag.
type BoardViewFields struct {
	ViewType           ViewType           `json:"viewType"`
	GroupByID          string             `json:"groupById,omitempty"`
	SortOptions        []SortOption       `json:"sortOptions"`
	VisiblePropertyIDs []string           `json:"visiblePropertyIds"`
	HiddenOptionIDs    []string           `json:"hiddenOptionIds"`
	CollapsedOptionIDs []string           `json:"collapsedOptionIds"`
	VisibleOptionIDs   []string           `json:"visibleOptionIds"`
	Filter             FilterGroup        `json:"filter"`
	CardOrder          []string           `json:"cardOrder"`
	ColumnWidths       map[string]float64 `json:"columnWidths"`
}

// BoardView is the typed facade over a view-typed block.
type BoardView struct {
	Block
	BoardViewFields
}

// NewBoardView creates a view of the given layout type.
func NewBoardView(viewType ViewType) *BoardView {
	view := &BoardView{
		Block: NewBlock(TypeView),
		BoardViewFields: BoardViewFields{
			ViewType:           viewType,
			SortOptions:        []SortOption{},
			VisiblePropertyIDs: []string{},
			HiddenOptionIDs:    []string{},
			CollapsedOptionIDs: []string{},
			VisibleOptionIDs:   []string{},
			Filter:             FilterGroup{Operation: OperationAnd, Filters: []FilterItem{}},
			CardOrder:          []string{},
			ColumnWidths:       map[string]float64{},
		},
	}
	view.mustPack()
	return view
}

// NewBoardViewFromBlock hydrates a view facade from a raw block.
func NewBoardViewFromBlock(b Block) (*BoardView, error) {
	if b.Type != TypeView {
		return nil, fmt.Errorf("hydrating view from %q block: %w", b.Type, ErrUnknownType)
	}
	view := &BoardView{Block: b.Clone()}
	if err := decodeFields(view.Block.Fields, &view.BoardViewFields); err != nil {
		return nil, fmt.Errorf("hydrating view %s: %w", b.ID, err)
	}
	return view, nil
}

// Pack re-encodes the typed attributes into the raw fields bag.
func (v *BoardView) Pack() error {
	fields, err := encodeFields(v.BoardViewFields)
	if err != nil {
		return err
	}
	v.Block.Fields = fields
	return nil
}

func (v *BoardView) mustPack() {
	if err := v.Pack(); err != nil {
		panic(err)
	}
}
