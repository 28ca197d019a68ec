// Package clock is the single time source for snapshot and plan timestamps.
package clock

import "time"

// NowFunc supplies timestamps for snapshots, plans and progress counters.
// Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }
