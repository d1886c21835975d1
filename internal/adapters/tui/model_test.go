package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/domain"
)

// fakeController serves canned snapshots so model behavior can be tested
// without a session or directory.
type fakeController struct {
	tree        *domain.TreeNode
	expanded    domain.ExpandedSet
	expandErr   error
	cleared     bool
	invalidated []string
}

func (f *fakeController) Tree() *domain.TreeNode       { return f.tree }
func (f *fakeController) Expanded() domain.ExpandedSet { return f.expanded.Clone() }
func (f *fakeController) CacheStats() cache.Stats      { return cache.Stats{} }
func (f *fakeController) ClearCache()                  { f.cleared = true }

func (f *fakeController) Invalidate(kind domain.Kind, entityID string) {
	f.invalidated = append(f.invalidated, string(kind)+":"+entityID)
}

func (f *fakeController) Expand(_ context.Context, nodeID string) (*domain.TreeNode, error) {
	if f.expandErr != nil {
		return f.tree, f.expandErr
	}
	f.expanded.Add(nodeID)
	return f.tree, nil
}

func (f *fakeController) Collapse(nodeID string) (*domain.TreeNode, error) {
	f.tree = domain.CollapseNode(f.tree, f.expanded, nodeID)
	return f.tree, nil
}

func newFake() *fakeController {
	root := domain.NewRootNode(domain.Group{ID: "G", DisplayName: "Engineering"})
	alice := domain.NewChildNode(root.NodeID, domain.RelationMember, domain.User{ID: "alice", DisplayName: "Alice"})
	nested := domain.NewChildNode(root.NodeID, domain.RelationMember, domain.Group{ID: "nested", DisplayName: "Nested"})
	root.Children = []*domain.TreeNode{alice, nested}

	expanded := domain.NewExpandedSet()
	expanded.Add(root.NodeID)

	return &fakeController{tree: root, expanded: expanded}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_FlattenRespectsExpansion(t *testing.T) {
	t.Parallel()

	f := newFake()
	m := NewModel(f)

	require.Len(t, m.rows, 3)
	assert.Equal(t, "group-G", m.rows[0].node.NodeID)
	assert.Equal(t, 1, m.rows[1].depth)

	// Collapsed children stay hidden.
	f.expanded.Remove("group-G")
	m.reload()
	require.Len(t, m.rows, 1)
}

func TestModel_Navigation(t *testing.T) {
	t.Parallel()

	m := NewModel(newFake())

	_, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.selected)
	_, _ = m.Update(keyMsg("k"))
	assert.Equal(t, 0, m.selected)

	// Stays in range at the edges.
	_, _ = m.Update(keyMsg("k"))
	assert.Equal(t, 0, m.selected)
}

func TestModel_EnterExpandsAsync(t *testing.T) {
	t.Parallel()

	f := newFake()
	m := NewModel(f)

	// Select the collapsed Nested group and toggle it.
	m.selected = 2
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "group-G-member-nested", m.loading)

	msg := cmd()
	done, ok := msg.(expandDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	_, _ = m.Update(done)
	assert.Empty(t, m.loading)
	assert.True(t, m.expanded.Contains("group-G-member-nested"))
}

func TestModel_EnterCollapsesSync(t *testing.T) {
	t.Parallel()

	f := newFake()
	m := NewModel(f)

	// Root is expanded; enter collapses it immediately, no command.
	_, cmd := m.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
	require.Len(t, m.rows, 1)
}

func TestModel_ExpandFailureShowsStatus(t *testing.T) {
	t.Parallel()

	f := newFake()
	f.expandErr = errors.Join(domain.ErrDirectoryFetch, errors.New("http 503"))
	m := NewModel(f)

	m.selected = 2
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	_, _ = m.Update(cmd())
	assert.Contains(t, m.status, "expand failed")

	// The tree is unchanged; the node stays collapsed.
	assert.False(t, m.expanded.Contains("group-G-member-nested"))
}

func TestModel_ClearCacheKey(t *testing.T) {
	t.Parallel()

	f := newFake()
	m := NewModel(f)

	_, _ = m.Update(keyMsg("c"))
	assert.True(t, f.cleared)
	assert.Equal(t, "cache cleared", m.status)
}

func TestModel_RefreshInvalidatesOnlySelectedNode(t *testing.T) {
	t.Parallel()

	f := newFake()
	m := NewModel(f)

	// Root is selected and expanded; refresh re-expands it.
	_, cmd := m.Update(keyMsg("r"))
	require.NotNil(t, cmd)

	assert.Equal(t, []string{"group:G"}, f.invalidated)
	assert.False(t, f.cleared, "refresh keeps unrelated cache entries")

	_, _ = m.Update(cmd())
	assert.True(t, m.expanded.Contains("group-G"))
}

func TestModel_RefreshOnCollapsedNodeIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFake()
	m := NewModel(f)

	// The Nested group is collapsed; refresh does nothing.
	m.selected = 2
	_, cmd := m.Update(keyMsg("r"))
	assert.Nil(t, cmd)
	assert.Empty(t, f.invalidated)
}

func TestModel_QuitKeys(t *testing.T) {
	t.Parallel()

	m := NewModel(newFake())
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewRendersRows(t *testing.T) {
	t.Parallel()

	m := NewModel(newFake())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "Engineering")
	assert.Contains(t, view, "Alice")
	assert.True(t, strings.Contains(view, "q quit"))
}
