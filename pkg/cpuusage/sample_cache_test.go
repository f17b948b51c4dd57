package cpuusage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wandalen/wProcessTreeWindows/pkg/metricsmanager"
	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// newTestPooledCalculator pins 2 cores and hands back a clock control so
// tests can space the calls apart.
func newTestPooledCalculator(sampler CpuTimeSampler) (*PooledCalculator, *metricsmanager.MetricsMock, func(time.Duration)) {
	metrics := metricsmanager.NewMetricsMock()
	pooled := NewPooledCalculator(sampler, metrics, 8, time.Minute)
	pooled.calc.cores = 2
	current := time.Unix(1700000000, 0)
	pooled.calc.now = func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return pooled, metrics, advance
}

func TestPooledCalculatorFirstCallHasNoBaseline(t *testing.T) {
	sampler := NewCpuTimeSamplerMock()
	sampler.SetReadings(7, 100*time.Millisecond)
	pooled, _, _ := newTestPooledCalculator(sampler)

	out := pooled.AnnotateCpuUsage([]snapshot.ProcessRecord{{PID: 7}})

	require.NotNil(t, out[0].Cpu)
	assert.Equal(t, 0.0, *out[0].Cpu)
	assert.Equal(t, 1, sampler.Calls(7))
}

func TestPooledCalculatorComputesDeltaAcrossCalls(t *testing.T) {
	sampler := NewCpuTimeSamplerMock()
	sampler.SetReadings(7, 100*time.Millisecond, 350*time.Millisecond)
	pooled, _, advance := newTestPooledCalculator(sampler)

	records := []snapshot.ProcessRecord{{PID: 7, Name: "worker"}}

	first := pooled.AnnotateCpuUsage(records)
	require.NotNil(t, first[0].Cpu)
	assert.Equal(t, 0.0, *first[0].Cpu)

	advance(500 * time.Millisecond)

	second := pooled.AnnotateCpuUsage(records)
	require.NotNil(t, second[0].Cpu)
	// 250ms of CPU over the 500ms since the previous call on 2 cores
	assert.InDelta(t, 25.0, *second[0].Cpu, 0.0001)
}

func TestPooledCalculatorBaselineExpires(t *testing.T) {
	sampler := NewCpuTimeSamplerMock()
	sampler.SetReadings(7, 100*time.Millisecond, 350*time.Millisecond)
	pooled := NewPooledCalculator(sampler, metricsmanager.NewMetricsMock(), 8, 50*time.Millisecond)
	pooled.calc.cores = 2
	current := time.Unix(1700000000, 0)
	pooled.calc.now = func() time.Time { return current }

	records := []snapshot.ProcessRecord{{PID: 7}}

	out := pooled.AnnotateCpuUsage(records)
	assert.Equal(t, 0.0, *out[0].Cpu)

	// Outlive the cache TTL; the stale baseline must not be used.
	time.Sleep(100 * time.Millisecond)
	current = current.Add(500 * time.Millisecond)

	out = pooled.AnnotateCpuUsage(records)
	assert.Equal(t, 0.0, *out[0].Cpu)
}

func TestPooledCalculatorFailedSampleDropsBaseline(t *testing.T) {
	sampler := NewCpuTimeSamplerMock()
	sampler.SetReadings(7, 100*time.Millisecond, 350*time.Millisecond, 600*time.Millisecond, 850*time.Millisecond)
	pooled, metrics, advance := newTestPooledCalculator(sampler)

	records := []snapshot.ProcessRecord{{PID: 7}}

	out := pooled.AnnotateCpuUsage(records)
	assert.Equal(t, 0.0, *out[0].Cpu)

	// The pid becomes unreadable; its baseline must not survive.
	sampler.SetError(7, errors.New("no such process"))
	advance(500 * time.Millisecond)
	out = pooled.AnnotateCpuUsage(records)
	assert.Equal(t, 0.0, *out[0].Cpu)
	assert.Equal(t, int32(1), metrics.CpuSampleMissCounter.Load())

	// Readable again: the first reading only rebuilds the baseline.
	sampler.SetError(7, nil)
	advance(500 * time.Millisecond)
	out = pooled.AnnotateCpuUsage(records)
	assert.Equal(t, 0.0, *out[0].Cpu)

	advance(500 * time.Millisecond)
	out = pooled.AnnotateCpuUsage(records)
	require.NotNil(t, out[0].Cpu)
	assert.InDelta(t, 25.0, *out[0].Cpu, 0.0001)
}
