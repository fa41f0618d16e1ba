package blocks

import (
	"time"

	"github.com/google/uuid"
)

// CurrentSchema is the format version written into new blocks' Schema field.
const CurrentSchema = 1

// Type identifies the concrete kind of a block.
type Type string

const (
	TypeBoard   Type = "board"
	TypeView    Type = "view"
	TypeCard    Type = "card"
	TypeText    Type = "text"
	TypeImage   Type = "image"
	TypeDivider Type = "divider"
	TypeComment Type = "comment"
)

// KnownTypes lists every block type the hydrator accepts.
var KnownTypes = []Type{TypeBoard, TypeView, TypeCard, TypeText, TypeImage, TypeDivider, TypeComment}

// IsKnownType reports whether t is one of the closed block type set.
func IsKnownType(t Type) bool {
	for _, known := range KnownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Block is the universal persisted entity. Every board, view, card and
// content item shares this envelope; type-specific attributes live in the
// open Fields bag.
type Block struct {
	ID       string         `json:"id"`
	ParentID string         `json:"parentId"`
	RootID   string         `json:"rootId"`
	Schema   int64          `json:"schema"`
	Type     Type           `json:"type"`
	Title    string         `json:"title"`
	Fields   map[string]any `json:"fields"`
	CreateAt int64          `json:"createAt"`
	UpdateAt int64          `json:"updateAt"`
	DeleteAt int64          `json:"deleteAt"`
}

// NewBlock creates an empty block of the given type with a fresh id and
// creation timestamps.
func NewBlock(blockType Type) Block {
	now := nowMillis()
	return Block{
		ID:       NewID(),
		Schema:   CurrentSchema,
		Type:     blockType,
		Fields:   map[string]any{},
		CreateAt: now,
		UpdateAt: now,
	}
}

// IsLive reports whether the block has not been tombstoned. DeleteAt == 0 is
// the sole liveness test used by merge and tree rebuild logic.
func (b *Block) IsLive() bool {
	return b.DeleteAt == 0
}

// Touch refreshes the modification timestamp.
func (b *Block) Touch() {
	b.UpdateAt = nowMillis()
}

// Clone returns a copy of the block with a deep-copied fields bag. A cloned
// block never aliases the source's Fields.
func (b Block) Clone() Block {
	clone := b
	clone.Fields = copyFields(b.Fields)
	return clone
}

// NewID returns a fresh opaque block identifier.
func NewID() string {
	return uuid.NewString()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// copyFields deep-copies a fields bag so derived blocks never share nested
// maps or slices with their source.
func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = copyValue(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = copyValue(v)
		}
		return out
	default:
		return value
	}
}
