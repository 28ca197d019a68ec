// Package graph defines the derived graph structures used for deadlock
// analysis: the resource allocation graph (RAG) over process and resource
// nodes, the reduced wait-for graph over processes, and cycles extracted from
// either.  Graphs are adjacency lists keyed by node identifier and are always
// derived from a model snapshot, never mutated in place.
package graph
