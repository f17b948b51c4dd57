package snapshot

// ProcessRecord is a single process observation taken from one snapshot.
// Records are plain values: transforms copy them into their results, so no
// state is shared between queries and no identity survives across snapshots.
type ProcessRecord struct {
	// Process identity
	PID  uint32
	PPID uint32
	Name string

	// Optional fields, populated by providers only when selected via FieldFlag
	Memory      *uint64
	CommandLine *string

	// Cpu is set by the CPU usage calculator, percent of total capacity in [0,100]
	Cpu *float64
}

// ProcessTreeNode is one node of a parent/child hierarchy assembled from a
// flat snapshot. Children preserve snapshot scan order and are never nil.
type ProcessTreeNode struct {
	ProcessRecord
	Children []*ProcessTreeNode
}
