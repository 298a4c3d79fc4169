package interfaces

import "errors"

// ErrNotFound is returned by every repository when no record exists at
// the requested identifier.
var ErrNotFound = errors.New("record not found")
