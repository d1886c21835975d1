// Package materializer builds membership tree snapshots incrementally. Each
// expand or collapse produces a new immutable tree that shares untouched
// subtrees with its predecessor.
package materializer

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// Materializer turns directory lookups into tree snapshots.
type Materializer struct {
	dir ports.Directory
}

// New creates a Materializer reading through the given directory.
func New(dir ports.Directory) *Materializer {
	return &Materializer{dir: dir}
}

// BuildRoot starts a fresh tree rooted at the given entity.
func (m *Materializer) BuildRoot(e domain.Entity) *domain.TreeNode {
	return domain.NewRootNode(e)
}

// Expand materializes the children of nodeID and returns the new snapshot.
// For a group node the member edges come first, then the groups it is
// nested in. Expanding a node that is no longer in the tree is a no-op: an
// ancestor collapse pruned it, and the stale request is simply dropped.
//
// On a fetch failure the input tree is returned unchanged and the node
// stays collapsed; partial expansions never become visible.
func (m *Materializer) Expand(ctx context.Context, root *domain.TreeNode, expanded domain.ExpandedSet, nodeID string) (*domain.TreeNode, error) {
	node := domain.FindNode(root, nodeID)
	if node == nil {
		return root, nil
	}

	children, err := m.childrenOf(ctx, node)
	if err != nil {
		return root, err
	}

	newRoot, ok := domain.ReplaceChildren(root, nodeID, children)
	if !ok {
		return root, nil
	}
	// Re-expansion replaces the children wholesale, so any expansion state
	// recorded for the old subtree no longer describes a loaded node.
	for _, id := range domain.SubtreeIDs(node) {
		if id != nodeID {
			expanded.Remove(id)
		}
	}
	expanded.Add(nodeID)
	return newRoot, nil
}

// Collapse prunes nodeID and its whole subtree. Descendants forget their
// expansion state, so re-expanding the node later yields a fresh one-level
// view. Collapsing a node that is not in the tree returns the input tree.
func (m *Materializer) Collapse(root *domain.TreeNode, expanded domain.ExpandedSet, nodeID string) *domain.TreeNode {
	return domain.CollapseNode(root, expanded, nodeID)
}

func (m *Materializer) childrenOf(ctx context.Context, node *domain.TreeNode) ([]*domain.TreeNode, error) {
	switch node.Kind {
	case domain.KindUser:
		groups, err := m.dir.UserGroups(ctx, node.OriginalID)
		if err != nil {
			return nil, err
		}
		return groupChildren(node.NodeID, domain.RelationGroup, groups), nil

	case domain.KindDevice:
		groups, err := m.dir.DeviceGroups(ctx, node.OriginalID)
		if err != nil {
			return nil, err
		}
		return groupChildren(node.NodeID, domain.RelationGroup, groups), nil

	case domain.KindGroup:
		members, err := m.dir.GroupMembers(ctx, node.OriginalID)
		if err != nil {
			return nil, err
		}
		parents, err := m.dir.GroupMemberOf(ctx, node.OriginalID)
		if err != nil {
			return nil, err
		}

		children := make([]*domain.TreeNode, 0, len(members)+len(parents))
		for _, member := range members {
			children = append(children, domain.NewChildNode(node.NodeID, domain.RelationMember, member))
		}
		children = append(children, groupChildren(node.NodeID, domain.RelationParent, parents)...)
		return children, nil
	}
	return nil, nil
}

func groupChildren(parentID string, rel domain.Relation, groups []domain.Group) []*domain.TreeNode {
	children := make([]*domain.TreeNode, 0, len(groups))
	for _, g := range groups {
		children = append(children, domain.NewChildNode(parentID, rel, g))
	}
	return children
}
