// Package app implements the application layer for grove: the explorer
// session holding the current tree snapshot, and the facade the CLI and
// TUI drive.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/materializer"
	"go.trai.ch/zerr"
)

// Session owns the mutable explorer state: the current immutable tree
// snapshot, the set of expanded nodes, and a generation counter.
//
// Expansions run without holding the lock, so a result may arrive after
// the tree it was computed against has been replaced. The generation
// counter catches that: every committed change bumps it, and a result
// computed against an older generation is discarded silently.
type Session struct {
	mat *materializer.Materializer
	dir ports.Directory
	log ports.Logger

	mu       sync.Mutex
	root     *domain.TreeNode
	expanded domain.ExpandedSet
	gen      uint64
}

// NewSession creates an empty Session. A root entity must be selected
// before tree operations work.
func NewSession(mat *materializer.Materializer, dir ports.Directory, log ports.Logger) *Session {
	return &Session{
		mat:      mat,
		dir:      dir,
		log:      log,
		expanded: domain.NewExpandedSet(),
	}
}

// SelectRoot resolves query to a single entity of the given kind and starts
// a fresh tree there. Any in-flight expansion against the previous tree is
// invalidated.
func (s *Session) SelectRoot(ctx context.Context, kind domain.Kind, query string) (*domain.TreeNode, error) {
	entity, err := s.ResolveEntity(ctx, kind, query)
	if err != nil {
		return nil, err
	}

	root := s.mat.BuildRoot(entity)

	s.mu.Lock()
	s.root = root
	s.expanded = domain.NewExpandedSet()
	s.gen++
	s.mu.Unlock()

	return root, nil
}

// Expand materializes the children of nodeID and commits the new snapshot,
// unless the session moved on while the directory was being read. A stale
// result is dropped; the caller sees the current tree either way.
func (s *Session) Expand(ctx context.Context, nodeID string) (*domain.TreeNode, error) {
	s.mu.Lock()
	if s.root == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoRootSelected
	}
	base := s.root
	gen := s.gen
	scratch := s.expanded.Clone()
	s.mu.Unlock()

	newRoot, err := s.mat.Expand(ctx, base, scratch, nodeID)
	if err != nil {
		return base, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Any commit bumps the generation, so when two expansions race the
	// first to commit wins and the later one is dropped even if it
	// targeted a different node. Merging it would graft children onto a
	// snapshot it never saw; the caller can simply re-expand.
	if s.gen != gen {
		s.log.Info(fmt.Sprintf("dropping stale expansion of %s", nodeID))
		return s.root, nil
	}
	s.root = newRoot
	s.expanded = scratch
	s.gen++
	return newRoot, nil
}

// Collapse prunes nodeID and its subtree. Collapse touches no I/O, so it
// commits synchronously under the lock.
func (s *Session) Collapse(nodeID string) (*domain.TreeNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil {
		return nil, domain.ErrNoRootSelected
	}
	s.root = s.mat.Collapse(s.root, s.expanded, nodeID)
	s.gen++
	return s.root, nil
}

// Tree returns the current snapshot, which is safe to read concurrently.
func (s *Session) Tree() *domain.TreeNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Expanded returns a copy of the expanded set matching the current snapshot.
func (s *Session) Expanded() domain.ExpandedSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded.Clone()
}

// ResolveEntity resolves an id, display name, or user principal name to a
// single directory entity of the given kind. Matching is case-insensitive
// for names; an id match wins outright.
func (s *Session) ResolveEntity(ctx context.Context, kind domain.Kind, query string) (domain.Entity, error) {
	var candidates []domain.Entity

	switch kind {
	case domain.KindUser:
		users, err := s.dir.Users(ctx, "")
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			candidates = append(candidates, u)
		}
	case domain.KindGroup:
		groups, err := s.dir.Groups(ctx, "")
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			candidates = append(candidates, g)
		}
	case domain.KindDevice:
		devices, err := s.dir.Devices(ctx, "")
		if err != nil {
			return nil, err
		}
		for _, d := range devices {
			candidates = append(candidates, d)
		}
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrEntityNotFound, "unknown kind"), "kind", string(kind))
	}

	for _, c := range candidates {
		if c.EntityID() == query {
			return c, nil
		}
	}

	var matches []domain.Entity
	for _, c := range candidates {
		if strings.EqualFold(c.Label(), query) || matchesPrincipalName(c, query) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		err := zerr.With(zerr.Wrap(domain.ErrEntityNotFound, "no match"), "kind", string(kind))
		return nil, zerr.With(err, "query", query)
	default:
		err := zerr.With(zerr.Wrap(domain.ErrEntityNotFound, "ambiguous name"), "kind", string(kind))
		err = zerr.With(err, "query", query)
		return nil, zerr.With(err, "matches", len(matches))
	}
}

func matchesPrincipalName(e domain.Entity, query string) bool {
	u, ok := e.(domain.User)
	return ok && strings.EqualFold(u.UserPrincipalName, query)
}
