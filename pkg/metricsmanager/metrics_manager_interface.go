package metricsmanager

import "time"

// QueryKind labels the public query surface for metrics.
type QueryKind string

const (
	QueryKindList         QueryKind = "list"
	QueryKindTree         QueryKind = "tree"
	QueryKindCpuUsage     QueryKind = "cpu_usage"
	QueryKindCreationTime QueryKind = "creation_time"
)

// MetricsManager is an interface for reporting metrics
type MetricsManager interface {
	Start()
	Destroy()
	ReportQuery(kind QueryKind)
	ReportQueryDuration(kind QueryKind, duration time.Duration)
	ReportSnapshotFailure()
	ReportCpuSampleMiss()
}
