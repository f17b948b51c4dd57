package processtreebuilder

import (
	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// DefaultMaxTreeDepth bounds traversals when the caller has no tighter
// requirement. Snapshot parent links are untrusted input and may contain
// cycles, so every traversal carries a depth budget; 50 levels is far
// beyond any real process hierarchy.
const DefaultMaxTreeDepth = 50

// BuildProcessTree assembles the parent/child hierarchy rooted at rootPid
// from one flat snapshot. maxDepth bounds the traversal: a node at the
// depth limit keeps an empty child list even when the snapshot lists
// children for it. When no record carries rootPid the root becomes a
// zero-valued placeholder; children still attach to it by ppid.
func BuildProcessTree(rootPid uint32, records []snapshot.ProcessRecord, maxDepth int) (*snapshot.ProcessTreeNode, error) {
	if maxDepth <= 0 {
		return nil, &InvalidMaxDepthError{MaxDepth: maxDepth}
	}
	return buildSubtree(rootPid, records, maxDepth), nil
}

// FilterProcessList returns the subtree rooted at rootPid flattened into a
// record list in depth-first pre-order: every process appears before its
// children and sibling subtrees stay contiguous. The depth budget,
// placeholder root and duplicate rules match BuildProcessTree, so repeated
// subtrees under a cyclic snapshot repeat in the output.
func FilterProcessList(rootPid uint32, records []snapshot.ProcessRecord, maxDepth int) ([]snapshot.ProcessRecord, error) {
	if maxDepth <= 0 {
		return nil, &InvalidMaxDepthError{MaxDepth: maxDepth}
	}
	out := make([]snapshot.ProcessRecord, 0, len(records)+1)
	return appendSubtree(out, rootPid, records, maxDepth), nil
}

// buildSubtree builds the node for pid with the remaining depth budget.
// Children are every record whose ppid matches, in list order, resolved
// back through their pid so duplicate entries share the first occurrence's
// fields.
func buildSubtree(pid uint32, records []snapshot.ProcessRecord, remaining int) *snapshot.ProcessTreeNode {
	node := &snapshot.ProcessTreeNode{
		ProcessRecord: findRecord(pid, records),
		Children:      []*snapshot.ProcessTreeNode{},
	}
	if remaining == 0 {
		return node
	}
	for _, record := range records {
		if record.PPID == pid {
			node.Children = append(node.Children, buildSubtree(record.PID, records, remaining-1))
		}
	}
	return node
}

// appendSubtree walks the same shape as buildSubtree but emits records
// pre-order instead of materializing nodes.
func appendSubtree(out []snapshot.ProcessRecord, pid uint32, records []snapshot.ProcessRecord, remaining int) []snapshot.ProcessRecord {
	out = append(out, findRecord(pid, records))
	if remaining == 0 {
		return out
	}
	for _, record := range records {
		if record.PPID == pid {
			out = appendSubtree(out, record.PID, records, remaining-1)
		}
	}
	return out
}

// findRecord returns the first record carrying pid, or a zero-valued
// placeholder when the snapshot has none.
func findRecord(pid uint32, records []snapshot.ProcessRecord) snapshot.ProcessRecord {
	for _, record := range records {
		if record.PID == pid {
			return record
		}
	}
	return snapshot.ProcessRecord{PID: pid}
}
