// Package output renders tree snapshots as plain text for non-interactive
// commands.
package output

import (
	"strings"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/ui/style"
)

// RenderTree renders a snapshot as an indented tree. Expanded nodes without
// children are annotated as empty; collapsed nodes just end the branch.
func RenderTree(root *domain.TreeNode, expanded domain.ExpandedSet) string {
	if root == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(nodeLine(root, expanded))
	b.WriteByte('\n')
	renderChildren(&b, root, expanded, "")
	return b.String()
}

func renderChildren(b *strings.Builder, node *domain.TreeNode, expanded domain.ExpandedSet, prefix string) {
	for i, child := range node.Children {
		last := i == len(node.Children)-1

		branch, spacer := "├── ", "│   "
		if last {
			branch, spacer = "└── ", "    "
		}

		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(nodeLine(child, expanded))
		b.WriteByte('\n')

		renderChildren(b, child, expanded, prefix+spacer)
	}
}

func nodeLine(node *domain.TreeNode, expanded domain.ExpandedSet) string {
	line := style.KindIcon(string(node.Kind)) + " " + node.DisplayName + " (" + node.OriginalID + ")"
	if expanded.Contains(node.NodeID) && len(node.Children) == 0 {
		line += " [empty]"
	}
	return line
}
