package cpuusage

import (
	"time"

	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// CpuTimeSampler reads the cumulative processor time a process has consumed.
// Implementations wrap whatever counter the platform offers; the calculator
// only needs two readings of the same counter.
type CpuTimeSampler interface {
	// SampleCpuTime returns the total CPU time pid has consumed so far,
	// summed across all cores. An error marks the process unreadable for
	// this measurement.
	SampleCpuTime(pid uint32) (time.Duration, error)
}

// UsageCalculator annotates process records with CPU usage percentages.
type UsageCalculator interface {
	AnnotateCpuUsage(records []snapshot.ProcessRecord) []snapshot.ProcessRecord
}
