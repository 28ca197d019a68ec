package detector

import "github.com/gridlock/gridlock/model"

// SafeState runs the banker's safety check against a snapshot: it searches
// for an order in which every process can satisfy its outstanding requests
// from the available pool plus holdings released by earlier finishers.  The
// returned sequence is a safe completion order (deterministic, ascending id
// among the runnable); it covers all processes iff the state is safe.
func SafeState(snap *model.Snapshot) (bool, []string) {
	work := make(map[string]int, len(snap.Resources))
	for id, resource := range snap.Resources {
		work[id] = resource.Available
	}
	finished := make(map[string]bool, len(snap.Processes))
	var sequence []string

	processes := snap.ProcessIDs()
	for {
		advanced := false
		for _, id := range processes {
			if finished[id] {
				continue
			}
			if !coverable(snap.RequestsBy(id), work) {
				continue
			}
			for _, held := range snap.HeldBy(id) {
				work[held.Resource] += held.Count
			}
			finished[id] = true
			sequence = append(sequence, id)
			advanced = true
		}
		if !advanced {
			break
		}
	}
	return len(sequence) == len(processes), sequence
}

// Stalled returns the processes that can never finish from the snapshot
// state, in ascending id order.  An empty result means the state is safe.
func Stalled(snap *model.Snapshot) []string {
	_, sequence := SafeState(snap)
	done := make(map[string]bool, len(sequence))
	for _, id := range sequence {
		done[id] = true
	}
	var out []string
	for _, id := range snap.ProcessIDs() {
		if !done[id] {
			out = append(out, id)
		}
	}
	return out
}

func coverable(requests []model.Request, work map[string]int) bool {
	for i := range requests {
		if requests[i].Count > work[requests[i].Resource] {
			return false
		}
	}
	return true
}
