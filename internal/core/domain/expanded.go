package domain

// ExpandedSet tracks which tree nodes currently show their children.
// It is session-scoped state, passed explicitly into operations rather than
// hidden behind a singleton so the core stays testable without a UI runtime.
type ExpandedSet map[string]struct{}

// NewExpandedSet creates an empty set.
func NewExpandedSet() ExpandedSet {
	return make(ExpandedSet)
}

// Add marks nodeID as expanded.
func (s ExpandedSet) Add(nodeID string) {
	s[nodeID] = struct{}{}
}

// Remove unmarks nodeID. Removing an absent id is a no-op.
func (s ExpandedSet) Remove(nodeID string) {
	delete(s, nodeID)
}

// Contains reports whether nodeID is expanded.
func (s ExpandedSet) Contains(nodeID string) bool {
	_, ok := s[nodeID]
	return ok
}

// Len returns the number of expanded nodes.
func (s ExpandedSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s ExpandedSet) Clone() ExpandedSet {
	clone := make(ExpandedSet, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}
