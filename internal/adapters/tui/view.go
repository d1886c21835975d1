package tui

import (
	"fmt"
	"strings"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/ui/style"
)

const chromeLines = 3 // title, status, help

func (m *Model) listHeight() int {
	h := m.height - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the explorer.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("grove explorer"))
	b.WriteByte('\n')

	visible := m.listHeight()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := strings.Repeat("  ", r.depth) + marker(r.node, m.expanded) + " " +
			style.KindIcon(string(r.node.Kind)) + " " + r.node.DisplayName

		switch {
		case i == m.selected:
			line = selectedStyle.Render(line)
		case r.node.Kind == domain.KindGroup:
			line = groupStyle.Render(line)
		default:
			line = nodeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("j/k move · enter toggle · r refresh · c clear cache · q quit"))
	return b.String()
}

func (m *Model) statusLine() string {
	if m.status != "" {
		if strings.HasPrefix(m.status, "expand failed") {
			return errorStyle.Render(m.status)
		}
		return statusStyle.Render(m.status)
	}
	stats := m.ctrl.CacheStats()
	return statusStyle.Render(fmt.Sprintf("cache: %d hits, %d misses, %d entries",
		stats.Hits, stats.Misses, stats.Entries))
}

// marker shows the expansion state of a node. Groups always fan out; a user
// or device node is expandable too (into its groups).
func marker(node *domain.TreeNode, expanded domain.ExpandedSet) string {
	if expanded.Contains(node.NodeID) {
		return style.Expanded
	}
	return style.Collapsed
}
