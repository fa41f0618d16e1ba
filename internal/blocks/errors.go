package blocks

import "errors"

var (
	// ErrUnknownType indicates a block carried a type outside the closed set.
	ErrUnknownType = errors.New("unknown block type")
	// ErrBlockNotFound indicates a referenced block is absent from the set.
	ErrBlockNotFound = errors.New("block not found")
)
