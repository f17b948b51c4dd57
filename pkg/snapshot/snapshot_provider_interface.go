package snapshot

import "time"

// SnapshotProvider supplies point-in-time process enumerations. Acquiring
// the data from the OS is entirely the provider's business; the transforms
// in this module only consume the returned slice.
type SnapshotProvider interface {
	// Snapshot returns one flat enumeration of processes. Optional record
	// fields are populated only when selected by flags. Pid uniqueness
	// within the returned slice is the provider's responsibility.
	// Implementations must be safe for concurrent use.
	Snapshot(flags FieldFlag) ([]ProcessRecord, error)
}

// CreationTimeProvider is an optional capability of a snapshot provider.
type CreationTimeProvider interface {
	// ProcessCreationTime returns the time the process was started.
	// A zero time means the process could not be found.
	ProcessCreationTime(pid uint32) (time.Time, error)
}
