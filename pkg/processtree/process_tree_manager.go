package processtree

import (
	"time"

	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"

	"github.com/Wandalen/wProcessTreeWindows/pkg/config"
	"github.com/Wandalen/wProcessTreeWindows/pkg/cpuusage"
	"github.com/Wandalen/wProcessTreeWindows/pkg/metricsmanager"
	processtreebuilder "github.com/Wandalen/wProcessTreeWindows/pkg/processtree/builder"
	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
	"github.com/Wandalen/wProcessTreeWindows/pkg/utils"
)

// ProcessTreeManagerImpl implements the ProcessTreeManager interface
type ProcessTreeManagerImpl struct {
	provider   snapshot.SnapshotProvider
	calculator cpuusage.UsageCalculator
	metrics    metricsmanager.MetricsManager
	config     config.Config
}

// NewProcessTreeManager creates a new process tree manager. calculator may
// be nil when CPU annotation is not needed; GetProcessCpuUsage then fails.
func NewProcessTreeManager(
	provider snapshot.SnapshotProvider,
	calculator cpuusage.UsageCalculator,
	metrics metricsmanager.MetricsManager,
	config config.Config,
) ProcessTreeManager {
	return &ProcessTreeManagerImpl{
		provider:   provider,
		calculator: calculator,
		metrics:    metrics,
		config:     config,
	}
}

func (ptm *ProcessTreeManagerImpl) GetProcessList(rootPid uint32, flags snapshot.FieldFlag) ([]snapshot.ProcessRecord, error) {
	start := time.Now()
	records, err := ptm.takeSnapshot(flags)
	if err != nil {
		return nil, err
	}

	list, err := processtreebuilder.FilterProcessList(rootPid, records, ptm.config.MaxTreeDepth)
	if err != nil {
		return nil, err
	}

	ptm.metrics.ReportQuery(metricsmanager.QueryKindList)
	ptm.metrics.ReportQueryDuration(metricsmanager.QueryKindList, time.Since(start))
	return list, nil
}

func (ptm *ProcessTreeManagerImpl) GetProcessTree(rootPid uint32, flags snapshot.FieldFlag) (*snapshot.ProcessTreeNode, error) {
	start := time.Now()
	records, err := ptm.takeSnapshot(flags)
	if err != nil {
		return nil, err
	}

	tree, err := processtreebuilder.BuildProcessTree(rootPid, records, ptm.config.MaxTreeDepth)
	if err != nil {
		return nil, err
	}

	logger.L().Debug("process tree assembled", helpers.String("tree", utils.PrintTreeOneLine(tree)))
	ptm.metrics.ReportQuery(metricsmanager.QueryKindTree)
	ptm.metrics.ReportQueryDuration(metricsmanager.QueryKindTree, time.Since(start))
	return tree, nil
}

func (ptm *ProcessTreeManagerImpl) GetProcessCpuUsage(records []snapshot.ProcessRecord) ([]snapshot.ProcessRecord, error) {
	if ptm.calculator == nil {
		return nil, ErrNoUsageCalculator
	}

	start := time.Now()
	annotated := ptm.calculator.AnnotateCpuUsage(records)
	ptm.metrics.ReportQuery(metricsmanager.QueryKindCpuUsage)
	ptm.metrics.ReportQueryDuration(metricsmanager.QueryKindCpuUsage, time.Since(start))
	return annotated, nil
}

func (ptm *ProcessTreeManagerImpl) GetProcessCreationTime(pid uint32) (time.Time, error) {
	timeProvider, ok := ptm.provider.(snapshot.CreationTimeProvider)
	if !ok {
		return time.Time{}, ErrCreationTimeUnsupported
	}

	created, err := timeProvider.ProcessCreationTime(pid)
	if err != nil {
		logger.L().Error("process creation time lookup failed", helpers.Int("pid", int(pid)), helpers.Error(err))
		return time.Time{}, &SnapshotError{Err: err}
	}
	if created.IsZero() {
		return time.Time{}, &ProcessNotFoundError{Pid: pid}
	}

	ptm.metrics.ReportQuery(metricsmanager.QueryKindCreationTime)
	return created, nil
}

func (ptm *ProcessTreeManagerImpl) takeSnapshot(flags snapshot.FieldFlag) ([]snapshot.ProcessRecord, error) {
	records, err := ptm.provider.Snapshot(flags)
	if err != nil {
		ptm.metrics.ReportSnapshotFailure()
		logger.L().Error("process snapshot failed", helpers.String("flags", flags.String()), helpers.Error(err))
		return nil, &SnapshotError{Err: err}
	}
	return records, nil
}
