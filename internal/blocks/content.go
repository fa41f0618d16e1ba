package blocks

import "fmt"

// ContentFields are the attributes shared by card content blocks. Order is
// fractional so a block can be inserted between two siblings without
// renumbering them.
type ContentFields struct {
	Order  float64 `json:"order"`
	URL    string  `json:"url,omitempty"`
	FileID string  `json:"fileId,omitempty"`
}

// ContentBlock is the typed facade over text, image and divider blocks.
// For text blocks the content itself lives in Title; images carry a URL or
// uploaded file reference.
type ContentBlock struct {
	Block
	ContentFields
}

// NewTextBlock creates a text content block.
func NewTextBlock(text string, order float64) *ContentBlock {
	return newContentBlock(TypeText, text, ContentFields{Order: order})
}

// NewImageBlock creates an image content block referencing a URL.
func NewImageBlock(url string, order float64) *ContentBlock {
	return newContentBlock(TypeImage, "", ContentFields{Order: order, URL: url})
}

// NewDividerBlock creates a divider content block.
func NewDividerBlock(order float64) *ContentBlock {
	return newContentBlock(TypeDivider, "", ContentFields{Order: order})
}

func newContentBlock(blockType Type, title string, fields ContentFields) *ContentBlock {
	content := &ContentBlock{Block: NewBlock(blockType), ContentFields: fields}
	content.Block.Title = title
	content.mustPack()
	return content
}

// NewContentBlockFromBlock hydrates a content facade from a raw block.
func NewContentBlockFromBlock(b Block) (*ContentBlock, error) {
	if b.Type != TypeText && b.Type != TypeImage && b.Type != TypeDivider {
		return nil, fmt.Errorf("hydrating content from %q block: %w", b.Type, ErrUnknownType)
	}
	content := &ContentBlock{Block: b.Clone()}
	if err := decodeFields(content.Block.Fields, &content.ContentFields); err != nil {
		return nil, fmt.Errorf("hydrating content %s: %w", b.ID, err)
	}
	return content, nil
}

// Pack re-encodes the typed attributes into the raw fields bag.
func (c *ContentBlock) Pack() error {
	fields, err := encodeFields(c.ContentFields)
	if err != nil {
		return err
	}
	c.Block.Fields = fields
	return nil
}

func (c *ContentBlock) mustPack() {
	if err := c.Pack(); err != nil {
		panic(err)
	}
}

// CommentBlock is the typed facade over a comment. The comment body lives in
// Title; comments are ordered by CreateAt.
type CommentBlock struct {
	Block
}

// NewCommentBlock creates a comment block with the given body.
func NewCommentBlock(body string) *CommentBlock {
	comment := &CommentBlock{Block: NewBlock(TypeComment)}
	comment.Block.Title = body
	return comment
}

// NewCommentBlockFromBlock hydrates a comment facade from a raw block.
func NewCommentBlockFromBlock(b Block) (*CommentBlock, error) {
	if b.Type != TypeComment {
		return nil, fmt.Errorf("hydrating comment from %q block: %w", b.Type, ErrUnknownType)
	}
	return &CommentBlock{Block: b.Clone()}, nil
}
