package cpuusage

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Wandalen/wProcessTreeWindows/pkg/metricsmanager"
	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

var _ UsageCalculator = (*PooledCalculator)(nil)

// PooledCalculator trades the per-call sampling interval for a shared
// per-pid sample cache: each call takes one reading per process and derives
// usage from the delta against the cached previous reading. The first
// reading for a pid has no baseline and reports zero. Entries expire so
// pids that stop being queried age out of the cache.
type PooledCalculator struct {
	calc  *Calculator
	cache *expirable.LRU[uint32, cpuSample]
}

// NewPooledCalculator returns a calculator that keeps up to cacheSize
// previous readings for ttl. The cache is internally synchronized, so
// concurrent annotations remain safe; they merely share baselines.
func NewPooledCalculator(sampler CpuTimeSampler, metrics metricsmanager.MetricsManager, cacheSize int, ttl time.Duration) *PooledCalculator {
	return &PooledCalculator{
		calc:  NewCalculator(sampler, metrics),
		cache: expirable.NewLRU[uint32, cpuSample](cacheSize, nil, ttl),
	}
}

// AnnotateCpuUsage returns a copy of records with Cpu set on every entry.
// Unlike Calculator it returns without waiting; usage covers the window
// since the previous call that touched each pid.
func (pc *PooledCalculator) AnnotateCpuUsage(records []snapshot.ProcessRecord) []snapshot.ProcessRecord {
	out := make([]snapshot.ProcessRecord, len(records))
	copy(out, records)

	for i := range out {
		pid := out[i].PID
		second := pc.calc.takeSample(pid)
		usage := 0.0
		if second.ok {
			if first, cached := pc.cache.Get(pid); cached {
				usage = pc.calc.usageBetween(first, second)
			}
			pc.cache.Add(pid, second)
		} else {
			pc.calc.reportMiss(pid)
			pc.cache.Remove(pid)
		}
		out[i].Cpu = &usage
	}
	return out
}
