package metricsmanager

import (
	"sync/atomic"
	"time"

	"github.com/goradd/maps"
)

var _ MetricsManager = (*MetricsMock)(nil)

type MetricsMock struct {
	SnapshotFailureCounter atomic.Int32
	CpuSampleMissCounter   atomic.Int32
	QueryCounter           maps.SafeMap[QueryKind, int]
	QueryDuration          maps.SafeMap[QueryKind, time.Duration] // last reported duration per kind
}

func NewMetricsMock() *MetricsMock {
	return &MetricsMock{}
}

func (m *MetricsMock) Start() {
}

func (m *MetricsMock) Destroy() {
	m.SnapshotFailureCounter.Store(0)
	m.CpuSampleMissCounter.Store(0)
	m.QueryCounter.Clear()
	m.QueryDuration.Clear()
}

func (m *MetricsMock) ReportQuery(kind QueryKind) {
	m.QueryCounter.Set(kind, m.QueryCounter.Get(kind)+1)
}

func (m *MetricsMock) ReportQueryDuration(kind QueryKind, duration time.Duration) {
	m.QueryDuration.Set(kind, duration)
}

func (m *MetricsMock) ReportSnapshotFailure() {
	m.SnapshotFailureCounter.Add(1)
}

func (m *MetricsMock) ReportCpuSampleMiss() {
	m.CpuSampleMissCounter.Add(1)
}
