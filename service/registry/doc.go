// Package registry implements the resource model: the catalog of processes
// and resources together with the allocation and request edges between them.
// It is the only component that owns mutable state; mutations are serialized
// and atomic, and downstream analysis always works on snapshots.
package registry
