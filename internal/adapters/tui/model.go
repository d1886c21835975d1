// Package tui implements the interactive membership tree explorer.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/domain"
)

// Controller is the application surface the explorer drives. Expand may
// block on the directory; everything else is immediate.
type Controller interface {
	Tree() *domain.TreeNode
	Expanded() domain.ExpandedSet
	Expand(ctx context.Context, nodeID string) (*domain.TreeNode, error)
	Collapse(nodeID string) (*domain.TreeNode, error)
	Invalidate(kind domain.Kind, entityID string)
	CacheStats() cache.Stats
	ClearCache()
}

// row is one visible line of the flattened tree.
type row struct {
	node  *domain.TreeNode
	depth int
}

// expandDoneMsg reports a finished expansion. The session already resolved
// staleness; the model just re-reads the current snapshot.
type expandDoneMsg struct {
	nodeID string
	err    error
}

// Model represents the explorer TUI state.
type Model struct {
	ctrl Controller

	rows     []row
	expanded domain.ExpandedSet
	selected int
	offset   int
	height   int
	width    int

	loading string
	status  string
}

// NewModel creates an explorer over the controller's current tree.
func NewModel(ctrl Controller) *Model {
	m := &Model{ctrl: ctrl, height: 24, width: 80}
	m.reload()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// reload re-flattens the controller's current snapshot, keeping the
// selection in range.
func (m *Model) reload() {
	m.expanded = m.ctrl.Expanded()
	m.rows = flatten(m.ctrl.Tree(), m.expanded)
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	m.ensureVisible()
}

// flatten converts the tree into a linear list respecting expansion state.
// Only expanded nodes have their children included.
func flatten(root *domain.TreeNode, expanded domain.ExpandedSet) []row {
	var rows []row

	var walk func(node *domain.TreeNode, depth int)
	walk = func(node *domain.TreeNode, depth int) {
		rows = append(rows, row{node: node, depth: depth})
		if expanded.Contains(node.NodeID) {
			for _, child := range node.Children {
				walk(child, depth+1)
			}
		}
	}

	if root != nil {
		walk(root, 0)
	}
	return rows
}

func (m *Model) ensureVisible() {
	visible := m.listHeight()
	if visible <= 0 {
		return
	}
	if m.selected < m.offset {
		m.offset = m.selected
	} else if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
}

func (m *Model) selectedRow() *row {
	if m.selected >= 0 && m.selected < len(m.rows) {
		return &m.rows[m.selected]
	}
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()

	case expandDoneMsg:
		m.loading = ""
		if msg.err != nil {
			m.status = "expand failed: " + msg.err.Error()
		} else {
			m.status = ""
		}
		m.reload()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "k", "up":
		if m.selected > 0 {
			m.selected--
			m.ensureVisible()
		}

	case "j", "down":
		if m.selected < len(m.rows)-1 {
			m.selected++
			m.ensureVisible()
		}

	case "enter", " ":
		return m, m.toggle()

	case "c":
		m.ctrl.ClearCache()
		m.status = "cache cleared"

	case "r":
		// Refresh the selected subtree: drop just its cached relation
		// edges and re-expand. Unrelated cache entries stay warm.
		if r := m.selectedRow(); r != nil && m.expanded.Contains(r.node.NodeID) {
			m.ctrl.Invalidate(r.node.Kind, r.node.OriginalID)
			return m, m.expandCmd(r.node.NodeID)
		}
	}
	return m, nil
}

// toggle expands or collapses the selected node. Collapse is synchronous;
// expand runs as a command so the UI stays responsive during the fetch.
func (m *Model) toggle() tea.Cmd {
	r := m.selectedRow()
	if r == nil || m.loading != "" {
		return nil
	}

	if m.expanded.Contains(r.node.NodeID) {
		if _, err := m.ctrl.Collapse(r.node.NodeID); err != nil {
			m.status = err.Error()
			return nil
		}
		m.reload()
		return nil
	}
	return m.expandCmd(r.node.NodeID)
}

func (m *Model) expandCmd(nodeID string) tea.Cmd {
	m.loading = nodeID
	m.status = "loading " + nodeID + "..."
	return func() tea.Msg {
		_, err := m.ctrl.Expand(context.Background(), nodeID)
		return expandDoneMsg{nodeID: nodeID, err: err}
	}
}
