package snapshot

import (
	"sync"
	"time"
)

var _ SnapshotProvider = (*SnapshotProviderMock)(nil)
var _ CreationTimeProvider = (*SnapshotProviderMock)(nil)

// SnapshotProviderMock serves a fixed record set from memory. Optional
// fields are masked the way a real provider only populates them on request.
type SnapshotProviderMock struct {
	mutex         sync.Mutex
	records       []ProcessRecord
	creationTimes map[uint32]time.Time
	err           error
	snapshotCalls int
	lastFlags     FieldFlag
}

func NewSnapshotProviderMock(records ...ProcessRecord) *SnapshotProviderMock {
	return &SnapshotProviderMock{
		records:       records,
		creationTimes: make(map[uint32]time.Time),
	}
}

// SetRecords replaces the served record set.
func (sp *SnapshotProviderMock) SetRecords(records ...ProcessRecord) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	sp.records = records
}

// SetError makes every subsequent call fail with err.
func (sp *SnapshotProviderMock) SetError(err error) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	sp.err = err
}

// SetCreationTime registers the start time served by ProcessCreationTime.
func (sp *SnapshotProviderMock) SetCreationTime(pid uint32, t time.Time) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	sp.creationTimes[pid] = t
}

func (sp *SnapshotProviderMock) Snapshot(flags FieldFlag) ([]ProcessRecord, error) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	sp.snapshotCalls++
	sp.lastFlags = flags
	if sp.err != nil {
		return nil, sp.err
	}
	out := make([]ProcessRecord, len(sp.records))
	for i, record := range sp.records {
		if !flags.Has(FieldMemory) {
			record.Memory = nil
		}
		if !flags.Has(FieldCommandLine) {
			record.CommandLine = nil
		}
		out[i] = record
	}
	return out, nil
}

func (sp *SnapshotProviderMock) ProcessCreationTime(pid uint32) (time.Time, error) {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	if sp.err != nil {
		return time.Time{}, sp.err
	}
	return sp.creationTimes[pid], nil
}

// SnapshotCalls reports how many times Snapshot was invoked.
func (sp *SnapshotProviderMock) SnapshotCalls() int {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	return sp.snapshotCalls
}

// LastFlags reports the flags of the most recent Snapshot call.
func (sp *SnapshotProviderMock) LastFlags() FieldFlag {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	return sp.lastFlags
}
