package scenario

import "fmt"

// builtins returns the predefined catalog: classic deadlock shapes plus a
// safe configuration, replayable against a fresh resource model.
func builtins() []*Definition {
	return []*Definition{
		ring("circular-wait", "three processes in a circular hold-and-wait", 3),
		ring("mutual-exclusion", "two processes each holding what the other requests", 2),
		ring("four-way-ring", "four processes in a circular hold-and-wait", 4),
		partialDeadlock(),
		interlockingRings(),
		mixedInstances(),
		contention(),
		ring("six-ring", "six processes in a circular hold-and-wait", 6),
		safe(),
	}
}

// ring builds an n-process circular wait over single-instance resources:
// each process holds its own resource and requests its neighbour's.
func ring(name, description string, n int) *Definition {
	def := &Definition{Name: name, Description: description}
	for i := 1; i <= n; i++ {
		def.Ops = append(def.Ops,
			&Op{Kind: OpRegisterProcess, Process: fmt.Sprintf("p%d", i)},
			&Op{Kind: OpRegisterResource, Resource: fmt.Sprintf("r%d", i), Total: 1},
		)
	}
	for i := 1; i <= n; i++ {
		def.Ops = append(def.Ops, &Op{Kind: OpRequest, Process: fmt.Sprintf("p%d", i), Resource: fmt.Sprintf("r%d", i), Count: 1})
	}
	for i := 1; i <= n; i++ {
		next := i%n + 1
		def.Ops = append(def.Ops, &Op{Kind: OpRequest, Process: fmt.Sprintf("p%d", i), Resource: fmt.Sprintf("r%d", next), Count: 1})
	}
	return def
}

// partialDeadlock embeds a three-process ring next to a process that merely
// waits on a held resource without closing a cycle.
func partialDeadlock() *Definition {
	def := ring("partial-deadlock", "three deadlocked processes plus one blocked outsider", 3)
	def.Ops = append(def.Ops,
		&Op{Kind: OpRegisterProcess, Process: "p4"},
		&Op{Kind: OpRequest, Process: "p4", Resource: "r3", Count: 1},
	)
	return def
}

// interlockingRings builds two cycles sharing members, the shape that forces
// a second resolution pass when only one cycle is handed to the resolver.
func interlockingRings() *Definition {
	def := &Definition{Name: "interlocking-rings", Description: "five processes forming two overlapping cycles"}
	for i := 1; i <= 5; i++ {
		def.Ops = append(def.Ops,
			&Op{Kind: OpRegisterProcess, Process: fmt.Sprintf("p%d", i)},
			&Op{Kind: OpRegisterResource, Resource: fmt.Sprintf("r%d", i), Total: 1},
		)
	}
	for i := 1; i <= 5; i++ {
		def.Ops = append(def.Ops, &Op{Kind: OpRequest, Process: fmt.Sprintf("p%d", i), Resource: fmt.Sprintf("r%d", i), Count: 1})
	}
	def.Ops = append(def.Ops,
		&Op{Kind: OpRequest, Process: "p1", Resource: "r2", Count: 1},
		&Op{Kind: OpRequest, Process: "p2", Resource: "r3", Count: 1},
		&Op{Kind: OpRequest, Process: "p2", Resource: "r4", Count: 1},
		&Op{Kind: OpRequest, Process: "p3", Resource: "r1", Count: 1},
		&Op{Kind: OpRequest, Process: "p3", Resource: "r5", Count: 1},
		&Op{Kind: OpRequest, Process: "p4", Resource: "r5", Count: 1},
		&Op{Kind: OpRequest, Process: "p5", Resource: "r2", Count: 1},
	)
	return def
}

// mixedInstances mixes a single-instance resource with two multi-instance
// pools, producing a deadlock no single external release can break.
func mixedInstances() *Definition {
	return &Definition{
		Name:        "mixed-instances",
		Description: "deadlock across single- and multi-instance resources",
		Ops: []*Op{
			{Kind: OpRegisterProcess, Process: "p1"},
			{Kind: OpRegisterProcess, Process: "p2"},
			{Kind: OpRegisterProcess, Process: "p3"},
			{Kind: OpRegisterResource, Resource: "r1", Total: 1},
			{Kind: OpRegisterResource, Resource: "r2", Total: 2},
			{Kind: OpRegisterResource, Resource: "r3", Total: 2},
			{Kind: OpRequest, Process: "p1", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p2", Resource: "r2", Count: 2},
			{Kind: OpRequest, Process: "p3", Resource: "r3", Count: 2},
			{Kind: OpRequest, Process: "p1", Resource: "r2", Count: 2},
			{Kind: OpRequest, Process: "p1", Resource: "r3", Count: 1},
			{Kind: OpRequest, Process: "p2", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p2", Resource: "r3", Count: 1},
			{Kind: OpRequest, Process: "p3", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p3", Resource: "r2", Count: 1},
		},
	}
}

// contention queues several processes behind one busy single-instance
// resource; everyone waits but no cycle forms.
func contention() *Definition {
	return &Definition{
		Name:        "contention",
		Description: "starvation-like queueing without deadlock",
		Ops: []*Op{
			{Kind: OpRegisterProcess, Process: "p1"},
			{Kind: OpRegisterProcess, Process: "p2"},
			{Kind: OpRegisterProcess, Process: "p3"},
			{Kind: OpRegisterProcess, Process: "p4"},
			{Kind: OpRegisterResource, Resource: "r1", Total: 1},
			{Kind: OpRequest, Process: "p1", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p2", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p3", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p4", Resource: "r1", Count: 1},
		},
	}
}

// safe leaves every request granted.
func safe() *Definition {
	return &Definition{
		Name:        "safe",
		Description: "all requests satisfied, no waiting",
		Ops: []*Op{
			{Kind: OpRegisterProcess, Process: "p1"},
			{Kind: OpRegisterProcess, Process: "p2"},
			{Kind: OpRegisterResource, Resource: "r1", Total: 2},
			{Kind: OpRegisterResource, Resource: "r2", Total: 1},
			{Kind: OpRequest, Process: "p1", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p2", Resource: "r1", Count: 1},
			{Kind: OpRequest, Process: "p2", Resource: "r2", Count: 1},
		},
	}
}
