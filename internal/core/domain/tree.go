package domain

// Relation tags the membership edge a child node was reached through.
// A group node shows both its members and the groups it belongs to, so the
// tag is part of the node id to keep the two child sets disjoint.
type Relation string

const (
	// RelationMember links a group node to one of its members.
	RelationMember Relation = "member"
	// RelationParent links a group node to a group it belongs to.
	RelationParent Relation = "parent"
	// RelationGroup links a user or device node to one of its groups.
	RelationGroup Relation = "group"
)

// TreeNode is one position in the membership tree. The same directory entity
// may appear at several positions (reachable through different groups); each
// occurrence gets its own path-derived NodeID while OriginalID stays the
// directory object id.
//
// Nodes are treated as immutable once linked into a tree: every mutation
// produces a new root that shares untouched subtrees with the old one.
// An empty Children slice means "not expanded OR expanded and empty"; the
// ExpandedSet disambiguates.
type TreeNode struct {
	NodeID      string
	DisplayName string
	Kind        Kind
	OriginalID  string
	Children    []*TreeNode
}

// NewRootNode builds the root node for a freshly selected entity.
func NewRootNode(e Entity) *TreeNode {
	return &TreeNode{
		NodeID:      string(e.EntityKind()) + "-" + e.EntityID(),
		DisplayName: e.Label(),
		Kind:        e.EntityKind(),
		OriginalID:  e.EntityID(),
	}
}

// ChildID derives a child node id from its parent's id, the relation it was
// reached through and the child entity's directory id. The derivation is
// deterministic and collision-free across distinct membership paths.
func ChildID(parentID string, rel Relation, originalID string) string {
	return parentID + "-" + string(rel) + "-" + originalID
}

// NewChildNode builds a child node for e under the given parent id.
func NewChildNode(parentID string, rel Relation, e Entity) *TreeNode {
	return &TreeNode{
		NodeID:      ChildID(parentID, rel, e.EntityID()),
		DisplayName: e.Label(),
		Kind:        e.EntityKind(),
		OriginalID:  e.EntityID(),
	}
}

// FindNode locates nodeID by depth-first traversal from root.
// It returns nil when the node is not in the tree; callers treat that as a
// no-op since the node may have been pruned by a collapse of an ancestor.
func FindNode(root *TreeNode, nodeID string) *TreeNode {
	if root == nil {
		return nil
	}
	if root.NodeID == nodeID {
		return root
	}
	for _, child := range root.Children {
		if found := FindNode(child, nodeID); found != nil {
			return found
		}
	}
	return nil
}

// ReplaceChildren returns a new tree in which nodeID's children are replaced
// wholesale by children. Only the path from the root to the target node is
// copied; every untouched subtree is shared with the input tree, so previous
// snapshots held by callers stay valid. The second return value reports
// whether the node was found.
func ReplaceChildren(root *TreeNode, nodeID string, children []*TreeNode) (*TreeNode, bool) {
	if root == nil {
		return nil, false
	}
	if root.NodeID == nodeID {
		clone := *root
		clone.Children = children
		return &clone, true
	}
	for i, child := range root.Children {
		newChild, ok := ReplaceChildren(child, nodeID, children)
		if !ok {
			continue
		}
		clone := *root
		clone.Children = make([]*TreeNode, len(root.Children))
		copy(clone.Children, root.Children)
		clone.Children[i] = newChild
		return &clone, true
	}
	return nil, false
}

// SubtreeIDs collects the node ids of node and all of its descendants.
func SubtreeIDs(node *TreeNode) []string {
	if node == nil {
		return nil
	}
	ids := []string{node.NodeID}
	for _, child := range node.Children {
		ids = append(ids, SubtreeIDs(child)...)
	}
	return ids
}

// CollapseNode prunes nodeID: it removes the node and every descendant from
// expanded and returns a new tree in which the node's children are empty.
// Both effects happen before the call returns, so the caller observes them
// atomically. A missing node is a no-op returning the input tree.
func CollapseNode(root *TreeNode, expanded ExpandedSet, nodeID string) *TreeNode {
	node := FindNode(root, nodeID)
	if node == nil {
		return root
	}
	for _, id := range SubtreeIDs(node) {
		expanded.Remove(id)
	}
	newRoot, _ := ReplaceChildren(root, nodeID, nil)
	return newRoot
}
