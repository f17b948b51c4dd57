package utils

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Wandalen/wProcessTreeWindows/pkg/snapshot"
)

// PrintTreeOneLine prints the process tree in a single line showing the hierarchy
// Format: "root(pid,ppid) -> child1(pid,ppid) | root(pid,ppid) -> child2(pid,ppid)"
func PrintTreeOneLine(node *snapshot.ProcessTreeNode) string {
	if node == nil {
		return "nil"
	}

	var result strings.Builder
	printTreeOneLineRecursive(node, &result, 0)
	return result.String()
}

// printTreeOneLineRecursive recursively builds the tree string
func printTreeOneLineRecursive(node *snapshot.ProcessTreeNode, result *strings.Builder, depth int) {
	if node == nil {
		return
	}

	if depth > 0 {
		result.WriteString(" -> ")
	}
	result.WriteString(nodeLabel(node))

	for i, child := range node.Children {
		if i > 0 {
			// Siblings restart from the parent with a | separator
			result.WriteString(" | ")
			result.WriteString(nodeLabel(node))
			result.WriteString(" -> ")
			printTreeOneLineRecursive(child, result, 0)
		} else {
			printTreeOneLineRecursive(child, result, depth+1)
		}
	}
}

// nodeLabel formats a node as name(pid,ppid), falling back to a bare pid
// label for placeholder roots, with the RSS appended when present.
func nodeLabel(node *snapshot.ProcessTreeNode) string {
	label := fmt.Sprintf("pid(%d,%d)", node.PID, node.PPID)
	if node.Name != "" {
		label = fmt.Sprintf("%s(%d,%d)", node.Name, node.PID, node.PPID)
	}
	if node.Memory != nil {
		label += fmt.Sprintf("[%s]", humanize.Bytes(*node.Memory))
	}
	return label
}
