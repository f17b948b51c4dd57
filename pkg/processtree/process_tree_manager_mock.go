package processtree

import (
	"time"

	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// ProcessTreeManagerMock implements the ProcessTreeManager interface for testing
type ProcessTreeManagerMock struct {
	Records      []snapshot.ProcessRecord
	Tree         *snapshot.ProcessTreeNode
	CreationTime time.Time
	Err          error
}

var _ ProcessTreeManager = (*ProcessTreeManagerMock)(nil)

// NewProcessTreeManagerMock creates a new mock process tree manager
func NewProcessTreeManagerMock() *ProcessTreeManagerMock {
	return &ProcessTreeManagerMock{}
}

// GetProcessList returns the configured records
func (m *ProcessTreeManagerMock) GetProcessList(_ uint32, _ snapshot.FieldFlag) ([]snapshot.ProcessRecord, error) {
	return m.Records, m.Err
}

// GetProcessTree returns the configured tree
func (m *ProcessTreeManagerMock) GetProcessTree(_ uint32, _ snapshot.FieldFlag) (*snapshot.ProcessTreeNode, error) {
	return m.Tree, m.Err
}

// GetProcessCpuUsage echoes the records back unannotated
func (m *ProcessTreeManagerMock) GetProcessCpuUsage(records []snapshot.ProcessRecord) ([]snapshot.ProcessRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return records, nil
}

// GetProcessCreationTime returns the configured creation time
func (m *ProcessTreeManagerMock) GetProcessCreationTime(_ uint32) (time.Time, error) {
	return m.CreationTime, m.Err
}
