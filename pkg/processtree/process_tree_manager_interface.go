package processtree

import (
	"time"

	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

type ProcessTreeManager interface {
	// GetProcessList returns the subtree rooted at rootPid as a flat list
	// in depth-first pre-order. flags select which optional record fields
	// the provider populates.
	GetProcessList(rootPid uint32, flags snapshot.FieldFlag) ([]snapshot.ProcessRecord, error)
	// GetProcessTree returns the parent/child hierarchy rooted at rootPid.
	GetProcessTree(rootPid uint32, flags snapshot.FieldFlag) (*snapshot.ProcessTreeNode, error)
	// GetProcessCpuUsage annotates every record with its CPU usage since
	// the call started, as a percentage of total machine capacity.
	GetProcessCpuUsage(records []snapshot.ProcessRecord) ([]snapshot.ProcessRecord, error)
	// GetProcessCreationTime returns the start time of pid.
	GetProcessCreationTime(pid uint32) (time.Time, error)
}
