package processtree

import (
	"errors"
	"fmt"
)

// ErrNoUsageCalculator means the manager was built without a usage
// calculator and cannot serve CPU queries.
var ErrNoUsageCalculator = errors.New("no cpu usage calculator configured")

// ErrCreationTimeUnsupported means the snapshot provider cannot resolve
// process start times.
var ErrCreationTimeUnsupported = errors.New("snapshot provider does not support creation time lookup")

type ProcessNotFoundError struct {
	Pid uint32
}

func (e *ProcessNotFoundError) Error() string {
	return fmt.Sprintf("process with PID %d not found", e.Pid)
}

type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("failed to take process snapshot: %v", e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}
