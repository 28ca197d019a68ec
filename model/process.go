package model

// Status represents the lifecycle state of a process.
type Status string

const (
	StatusRunning    Status = "running"
	StatusWaiting    Status = "waiting"
	StatusTerminated Status = "terminated"
)

// Process represents a registered process competing for resources.
type Process struct {
	ID       string `json:"id" yaml:"id"`
	Status   Status `json:"status" yaml:"status"`
	Priority int    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Resource represents a registered resource with a fixed instance pool.
type Resource struct {
	ID        string `json:"id" yaml:"id"`
	Total     int    `json:"total" yaml:"total"`
	Available int    `json:"available" yaml:"available"`
}

// Allocation records instances of a resource currently held by a process.
// At most one allocation exists per (resource, process) pair; counts merge.
type Allocation struct {
	Resource string `json:"resource" yaml:"resource"`
	Process  string `json:"process" yaml:"process"`
	Count    int    `json:"count" yaml:"count"`
}

// Request records an outstanding, unsatisfied request of a process for a
// resource.  Sequence preserves arrival order so that freed instances are
// granted FIFO.  A merged request keeps the sequence of the earliest edge.
type Request struct {
	Process  string `json:"process" yaml:"process"`
	Resource string `json:"resource" yaml:"resource"`
	Count    int    `json:"count" yaml:"count"`
	Sequence uint64 `json:"sequence" yaml:"sequence"`
}
