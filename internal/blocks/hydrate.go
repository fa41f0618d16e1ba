package blocks

import (
	"errors"
	"fmt"
)

// Hydrated is implemented by every typed block facade. Envelope exposes the
// underlying raw block.
type Hydrated interface {
	Envelope() *Block
}

// Envelope returns the block itself, letting every facade that embeds Block
// satisfy Hydrated.
func (b *Block) Envelope() *Block {
	return b
}

// FallbackBlock is the degraded facade produced for a block whose type is
// outside the closed set. It keeps the envelope intact so a single corrupt
// record does not abort a whole tree rebuild.
type FallbackBlock struct {
	Block
}

// Hydrate converts a raw block into its typed facade. For an unknown type it
// returns a FallbackBlock alongside the error, so callers that ignore errors
// still get a usable envelope.
func Hydrate(b Block) (Hydrated, error) {
	switch b.Type {
	case TypeBoard:
		return NewBoardFromBlock(b)
	case TypeView:
		return NewBoardViewFromBlock(b)
	case TypeCard:
		return NewCardFromBlock(b)
	case TypeText, TypeImage, TypeDivider:
		return NewContentBlockFromBlock(b)
	case TypeComment:
		return NewCommentBlockFromBlock(b)
	default:
		return &FallbackBlock{Block: b.Clone()}, fmt.Errorf("hydrating block %s type %q: %w", b.ID, b.Type, ErrUnknownType)
	}
}

// HydrateAll converts a list of raw blocks, preserving input order. Failed
// records are kept as fallbacks and their errors joined, so partial success
// is visible as a non-nil error next to a full-length result.
func HydrateAll(raw []Block) ([]Hydrated, error) {
	hydrated := make([]Hydrated, 0, len(raw))
	var errs []error
	for _, b := range raw {
		typed, err := Hydrate(b)
		if err != nil {
			errs = append(errs, err)
			if typed == nil {
				typed = &FallbackBlock{Block: b.Clone()}
			}
		}
		hydrated = append(hydrated, typed)
	}
	return hydrated, errors.Join(errs...)
}
