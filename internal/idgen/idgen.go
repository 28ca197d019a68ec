// Package idgen issues identifiers for resolution plans and queued commands.
package idgen

import "github.com/google/uuid"

// NewFunc produces plan and message identifiers. It is a variable so tests
// can stub it with a deterministic sequence.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }
