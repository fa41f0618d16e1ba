package mcp

// ListBoardsParams are the arguments for list_boards.
type ListBoardsParams struct {
	IncludeTemplates bool `json:"include_templates,omitempty" jsonschema:"include board templates in the result"`
}

// BoardSummary is one board in a list_boards result.
type BoardSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	IsTemplate  bool   `json:"isTemplate,omitempty"`
}

// ListBoardsResult is the list_boards response.
type ListBoardsResult struct {
	Boards []BoardSummary `json:"boards"`
}

// GetBoardParams are the arguments for get_board.
type GetBoardParams struct {
	ID string `json:"id" jsonschema:"board id"`
}

// ViewSummary is one view in a get_board result.
type ViewSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ViewType string `json:"viewType"`
}

// CardSummary is one card in a get_board result.
type CardSummary struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Icon       string         `json:"icon,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// GetBoardResult is the get_board response.
type GetBoardResult struct {
	Board BoardSummary  `json:"board"`
	Views []ViewSummary `json:"views"`
	Cards []CardSummary `json:"cards"`
}

// GetCardParams are the arguments for get_card.
type GetCardParams struct {
	ID string `json:"id" jsonschema:"card id"`
}

// CommentSummary is one comment in a get_card result.
type CommentSummary struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	CreateAt int64  `json:"createAt"`
}

// GetCardResult is the get_card response. Contents are the card's text
// blocks in display order.
type GetCardResult struct {
	Card     CardSummary      `json:"card"`
	Contents []string         `json:"contents"`
	Comments []CommentSummary `json:"comments"`
}

// CreateBoardParams are the arguments for create_board.
type CreateBoardParams struct {
	Title       string `json:"title" jsonschema:"board title"`
	Description string `json:"description,omitempty" jsonschema:"board description"`
	Icon        string `json:"icon,omitempty" jsonschema:"emoji icon"`
}

// CreateBoardResult is the create_board response.
type CreateBoardResult struct {
	BoardID string `json:"boardId"`
	ViewID  string `json:"viewId"`
}

// CreateCardParams are the arguments for create_card.
type CreateCardParams struct {
	BoardID    string         `json:"board_id" jsonschema:"board to add the card to"`
	Title      string         `json:"title" jsonschema:"card title"`
	ViewID     string         `json:"view_id,omitempty" jsonschema:"view whose filter the card should satisfy (defaults to the board's first view)"`
	Properties map[string]any `json:"properties,omitempty" jsonschema:"property id to value assignments"`
}

// CreateCardResult is the create_card response.
type CreateCardResult struct {
	CardID string `json:"cardId"`
}

// ExportArchiveParams are the arguments for export_archive.
type ExportArchiveParams struct{}

// ExportArchiveResult carries a complete archive document.
type ExportArchiveResult struct {
	Content string `json:"content"`
}
