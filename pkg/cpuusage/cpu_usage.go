package cpuusage

import (
	"runtime"
	"time"

	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"

	"github.com/Wandalen/wProcessTreeWindows/pkg/metricsmanager"
	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// samplingInterval separates the two CPU time readings. The value is a
// fixed compromise: long enough to smooth scheduler noise, short enough
// that callers tolerate the latency. It is deliberately not configurable.
const samplingInterval = 500 * time.Millisecond

var _ UsageCalculator = (*Calculator)(nil)

// Calculator derives CPU usage percentages from two time-separated readings
// of each process' cumulative CPU time. Every call samples independently,
// so concurrent annotations do not disturb each other.
type Calculator struct {
	sampler CpuTimeSampler
	metrics metricsmanager.MetricsManager
	cores   int

	// overridable in tests
	sleep func(time.Duration)
	now   func() time.Time
}

type cpuSample struct {
	cpuTime time.Duration
	takenAt time.Time
	ok      bool
}

// NewCalculator returns a calculator that spreads usage over the number of
// logical cores visible to the runtime.
func NewCalculator(sampler CpuTimeSampler, metrics metricsmanager.MetricsManager) *Calculator {
	return &Calculator{
		sampler: sampler,
		metrics: metrics,
		cores:   runtime.NumCPU(),
		sleep:   time.Sleep,
		now:     time.Now,
	}
}

// AnnotateCpuUsage returns a copy of records with Cpu set on every entry.
// The call suspends its goroutine for the sampling interval between the two
// readings; an interrupted wait would leave the delta meaningless, so the
// wait cannot be cancelled. Processes that cannot be sampled on either
// reading report zero usage instead of failing the batch.
func (c *Calculator) AnnotateCpuUsage(records []snapshot.ProcessRecord) []snapshot.ProcessRecord {
	out := make([]snapshot.ProcessRecord, len(records))
	copy(out, records)

	first := make([]cpuSample, len(out))
	for i := range out {
		first[i] = c.takeSample(out[i].PID)
	}

	c.sleep(samplingInterval)

	for i := range out {
		second := c.takeSample(out[i].PID)
		usage := 0.0
		if first[i].ok && second.ok {
			usage = c.usageBetween(first[i], second)
		} else {
			c.reportMiss(out[i].PID)
		}
		out[i].Cpu = &usage
	}
	return out
}

func (c *Calculator) takeSample(pid uint32) cpuSample {
	cpuTime, err := c.sampler.SampleCpuTime(pid)
	if err != nil {
		return cpuSample{}
	}
	return cpuSample{cpuTime: cpuTime, takenAt: c.now(), ok: true}
}

// usageBetween converts two readings into a percentage of total machine
// capacity, clamped to [0,100]. Counter resets from pid reuse surface as
// negative deltas and clamp to zero.
func (c *Calculator) usageBetween(first, second cpuSample) float64 {
	wall := second.takenAt.Sub(first.takenAt)
	if wall <= 0 {
		return 0
	}
	percent := 100 * float64(second.cpuTime-first.cpuTime) / float64(wall) / float64(c.cores)
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func (c *Calculator) reportMiss(pid uint32) {
	logger.L().Debug("cpu time unreadable, reporting zero usage", helpers.Int("pid", int(pid)))
	c.metrics.ReportCpuSampleMiss()
}
