package cpuusage

import (
	"sync"
	"time"
)

var _ CpuTimeSampler = (*CpuTimeSamplerMock)(nil)

// CpuTimeSamplerMock serves scripted CPU time readings per pid.
type CpuTimeSamplerMock struct {
	mutex    sync.Mutex
	readings map[uint32][]time.Duration
	errs     map[uint32]error
	calls    map[uint32]int
}

func NewCpuTimeSamplerMock() *CpuTimeSamplerMock {
	return &CpuTimeSamplerMock{
		readings: make(map[uint32][]time.Duration),
		errs:     make(map[uint32]error),
		calls:    make(map[uint32]int),
	}
}

// SetReadings scripts consecutive readings for pid; the last reading
// repeats once the script is exhausted.
func (m *CpuTimeSamplerMock) SetReadings(pid uint32, readings ...time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.readings[pid] = readings
}

// SetError makes every reading for pid fail with err. A nil err restores
// scripted readings.
func (m *CpuTimeSamplerMock) SetError(pid uint32, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.errs[pid] = err
}

func (m *CpuTimeSamplerMock) SampleCpuTime(pid uint32) (time.Duration, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.calls[pid]++
	if err := m.errs[pid]; err != nil {
		return 0, err
	}
	readings := m.readings[pid]
	if len(readings) == 0 {
		return 0, nil
	}
	idx := m.calls[pid] - 1
	if idx >= len(readings) {
		idx = len(readings) - 1
	}
	return readings[idx], nil
}

// Calls reports how many readings pid served.
func (m *CpuTimeSamplerMock) Calls(pid uint32) int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.calls[pid]
}
