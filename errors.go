package gridlock

import "github.com/gridlock/gridlock/service/resolver"

// Re-exported sentinels so embedders can match resolution outcomes without
// importing the resolver package.
var (
	ErrNoDeadlock       = resolver.ErrNoDeadlock
	ErrResolutionFailed = resolver.ErrResolutionFailed
)
