package processtree

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wandalen/wProcessTreeWindows/pkg/config"
	"github.com/Wandalen/wProcessTreeWindows/pkg/cpuusage"
	"github.com/Wandalen/wProcessTreeWindows/pkg/metricsmanager"
	processtreebuilder "github.com/Wandalen/wProcessTreeWindows/pkg/processtree/builder"
	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// listOnlyProvider implements SnapshotProvider without the optional
// creation time capability.
type listOnlyProvider struct {
	records []snapshot.ProcessRecord
}

func (p *listOnlyProvider) Snapshot(_ snapshot.FieldFlag) ([]snapshot.ProcessRecord, error) {
	return p.records, nil
}

func createTestRecord(pid, ppid uint32, name string) snapshot.ProcessRecord {
	return snapshot.ProcessRecord{PID: pid, PPID: ppid, Name: name}
}

func setupTestManager(t *testing.T, records ...snapshot.ProcessRecord) (*ProcessTreeManagerImpl, *snapshot.SnapshotProviderMock, *metricsmanager.MetricsMock) {
	provider := snapshot.NewSnapshotProviderMock(records...)
	metrics := metricsmanager.NewMetricsMock()
	calculator := cpuusage.NewPooledCalculator(cpuusage.NewCpuTimeSamplerMock(), metrics, 16, time.Minute)
	cfg := config.Config{MaxTreeDepth: processtreebuilder.DefaultMaxTreeDepth}

	manager := NewProcessTreeManager(provider, calculator, metrics, cfg).(*ProcessTreeManagerImpl)
	t.Cleanup(metrics.Destroy)
	return manager, provider, metrics
}

func TestGetProcessTree(t *testing.T) {
	// 1 (init)
	// ├── 2 (svc)
	// └── 3 (svc)
	manager, provider, metrics := setupTestManager(t,
		createTestRecord(1, 0, "init"),
		createTestRecord(2, 1, "svc"),
		createTestRecord(3, 1, "svc"),
	)

	tree, err := manager.GetProcessTree(1, snapshot.FieldMemory)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), tree.PID)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, uint32(2), tree.Children[0].PID)
	assert.Equal(t, uint32(3), tree.Children[1].PID)

	assert.Equal(t, snapshot.FieldMemory, provider.LastFlags())
	assert.Equal(t, 1, metrics.QueryCounter.Get(metricsmanager.QueryKindTree))
}

func TestGetProcessTreeMissingRoot(t *testing.T) {
	manager, _, _ := setupTestManager(t)

	tree, err := manager.GetProcessTree(999, snapshot.FieldNone)
	require.NoError(t, err)

	assert.Equal(t, uint32(999), tree.PID)
	assert.Empty(t, tree.Name)
	assert.Empty(t, tree.Children)
}

func TestGetProcessList(t *testing.T) {
	manager, _, metrics := setupTestManager(t,
		createTestRecord(1, 0, "init"),
		createTestRecord(2, 1, "svc"),
		createTestRecord(3, 2, "worker"),
	)

	list, err := manager.GetProcessList(1, snapshot.FieldNone)
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, uint32(1), list[0].PID)
	assert.Equal(t, uint32(2), list[1].PID)
	assert.Equal(t, uint32(3), list[2].PID)
	assert.Equal(t, 1, metrics.QueryCounter.Get(metricsmanager.QueryKindList))
}

func TestManagerWrapsProviderFailure(t *testing.T) {
	manager, provider, metrics := setupTestManager(t)
	cause := errors.New("enumeration failed")
	provider.SetError(cause)

	_, err := manager.GetProcessTree(1, snapshot.FieldNone)
	var snapshotErr *SnapshotError
	require.ErrorAs(t, err, &snapshotErr)
	assert.ErrorIs(t, err, cause)

	_, err = manager.GetProcessList(1, snapshot.FieldNone)
	assert.ErrorAs(t, err, &snapshotErr)

	assert.Equal(t, int32(2), metrics.SnapshotFailureCounter.Load())
}

func TestManagerRejectsInvalidDepth(t *testing.T) {
	provider := snapshot.NewSnapshotProviderMock(createTestRecord(1, 0, "init"))
	metrics := metricsmanager.NewMetricsMock()
	manager := NewProcessTreeManager(provider, nil, metrics, config.Config{MaxTreeDepth: 0})

	_, err := manager.GetProcessTree(1, snapshot.FieldNone)
	var invalidErr *processtreebuilder.InvalidMaxDepthError
	assert.ErrorAs(t, err, &invalidErr)

	_, err = manager.GetProcessList(1, snapshot.FieldNone)
	assert.ErrorAs(t, err, &invalidErr)
}

func TestGetProcessCpuUsage(t *testing.T) {
	manager, _, metrics := setupTestManager(t)

	records := []snapshot.ProcessRecord{
		createTestRecord(1, 0, "init"),
		createTestRecord(2, 1, "svc"),
	}

	annotated, err := manager.GetProcessCpuUsage(records)
	require.NoError(t, err)

	require.Len(t, annotated, 2)
	for _, record := range annotated {
		require.NotNil(t, record.Cpu)
		assert.GreaterOrEqual(t, *record.Cpu, 0.0)
		assert.LessOrEqual(t, *record.Cpu, 100.0)
	}
	assert.Equal(t, 1, metrics.QueryCounter.Get(metricsmanager.QueryKindCpuUsage))
}

func TestGetProcessCpuUsageWithoutCalculator(t *testing.T) {
	provider := snapshot.NewSnapshotProviderMock()
	manager := NewProcessTreeManager(provider, nil, metricsmanager.NewMetricsMock(), config.Config{MaxTreeDepth: 50})

	_, err := manager.GetProcessCpuUsage([]snapshot.ProcessRecord{createTestRecord(1, 0, "init")})
	assert.ErrorIs(t, err, ErrNoUsageCalculator)
}

func TestGetProcessCreationTime(t *testing.T) {
	manager, provider, metrics := setupTestManager(t, createTestRecord(7, 1, "svc"))
	started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	provider.SetCreationTime(7, started)

	got, err := manager.GetProcessCreationTime(7)
	require.NoError(t, err)
	assert.Equal(t, started, got)
	assert.Equal(t, 1, metrics.QueryCounter.Get(metricsmanager.QueryKindCreationTime))
}

func TestGetProcessCreationTimeNotFound(t *testing.T) {
	manager, _, _ := setupTestManager(t)

	_, err := manager.GetProcessCreationTime(999)
	var notFoundErr *ProcessNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, uint32(999), notFoundErr.Pid)
}

func TestGetProcessCreationTimeUnsupportedProvider(t *testing.T) {
	provider := &listOnlyProvider{records: []snapshot.ProcessRecord{createTestRecord(1, 0, "init")}}
	manager := NewProcessTreeManager(provider, nil, metricsmanager.NewMetricsMock(), config.Config{MaxTreeDepth: 50})

	_, err := manager.GetProcessCreationTime(1)
	assert.ErrorIs(t, err, ErrCreationTimeUnsupported)
}
