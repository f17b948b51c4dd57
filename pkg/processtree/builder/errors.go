package processtreebuilder

import "fmt"

// InvalidMaxDepthError reports a depth budget that cannot bound a traversal.
type InvalidMaxDepthError struct {
	MaxDepth int
}

func (e *InvalidMaxDepthError) Error() string {
	return fmt.Sprintf("max depth must be a positive integer, got %d", e.MaxDepth)
}
