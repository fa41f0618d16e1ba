package sqlite

import "errors"

// ErrNotFound indicates the requested block does not exist.
var ErrNotFound = errors.New("block not found")
