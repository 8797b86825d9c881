package rounddb

import "errors"

// ErrNotFound indicates the requested round does not exist.
var ErrNotFound = errors.New("round record not found")
