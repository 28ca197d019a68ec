// Package builder derives graphs from resource model snapshots: the resource
// allocation graph over process and resource nodes, and the reduced wait-for
// graph over processes.  Both derivations are pure functions of the snapshot;
// Build is linear in nodes and edges, ReduceToWaitFor scans the allocation
// list once per pending request.
package builder

import (
	"github.com/gridlock/gridlock/model"
	"github.com/gridlock/gridlock/model/graph"
)

// Build derives the resource allocation graph from a snapshot.  Node set is
// exactly the registered processes and resources; allocation edges point
// resource → holder, request edges point requester → resource.
func Build(snap *model.Snapshot) *graph.RAG {
	g := graph.NewRAG()
	for id := range snap.Processes {
		g.AddNode(id, graph.NodeProcess)
	}
	for id := range snap.Resources {
		g.AddNode(id, graph.NodeResource)
	}
	for i := range snap.Allocations {
		a := &snap.Allocations[i]
		g.AddEdge(graph.Edge{From: a.Resource, To: a.Process, Kind: graph.EdgeAllocation, Count: a.Count})
	}
	for i := range snap.Requests {
		r := &snap.Requests[i]
		g.AddEdge(graph.Edge{From: r.Process, To: r.Resource, Kind: graph.EdgeRequest, Count: r.Count})
	}
	g.Sort()
	return g
}

// ReduceToWaitFor collapses the allocation graph to a wait-for graph over
// processes.  A request that the available pool can already cover adds no
// edges.  An uncoverable request adds an edge from the requester to each
// holder, visited in ascending holder id, until the visited holders' combined
// holdings plus the available pool would cover the request.  For a
// single-instance resource this degenerates to one edge toward the sole
// holder.
func ReduceToWaitFor(rag *graph.RAG, snap *model.Snapshot) *graph.WaitFor {
	wf := graph.NewWaitFor()
	for id, kind := range rag.Kinds {
		if kind == graph.NodeProcess {
			wf.AddNode(id)
		}
	}
	for i := range snap.Requests {
		request := &snap.Requests[i]
		resource, ok := snap.Resources[request.Resource]
		if !ok {
			continue
		}
		deficit := request.Count - resource.Available
		if deficit <= 0 {
			continue
		}
		for _, held := range snap.Holders(request.Resource) {
			if held.Process == request.Process {
				continue
			}
			wf.AddEdge(request.Process, held.Process)
			deficit -= held.Count
			if deficit <= 0 {
				break
			}
		}
	}
	wf.Sort()
	return wf
}
