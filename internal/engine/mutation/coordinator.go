// Package mutation coordinates membership writes against the directory.
// Each membership edge admits one in-flight mutation at a time, and every
// successful write invalidates the cached edges it touched.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
)

// Coordinator serializes membership mutations per edge.
type Coordinator struct {
	graph ports.GraphClient
	dir   ports.Directory
	log   ports.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New creates a Coordinator writing through graph and invalidating dir.
func New(graph ports.GraphClient, dir ports.Directory, log ports.Logger) *Coordinator {
	return &Coordinator{
		graph:    graph,
		dir:      dir,
		log:      log,
		inFlight: map[string]struct{}{},
	}
}

// AddToGroup adds an entity to a group. Adding an entity that is already a
// member succeeds quietly; the directory is the source of truth and the
// desired end state holds either way.
func (c *Coordinator) AddToGroup(ctx context.Context, kind domain.Kind, entityID, groupID string) error {
	release, err := c.acquire(entityID, groupID)
	if err != nil {
		return err
	}
	defer release()

	return c.add(ctx, kind, entityID, groupID)
}

// RemoveFromGroup removes an entity from a group.
func (c *Coordinator) RemoveFromGroup(ctx context.Context, kind domain.Kind, entityID, groupID string) error {
	release, err := c.acquire(entityID, groupID)
	if err != nil {
		return err
	}
	defer release()

	if err := c.graph.RemoveMember(ctx, groupID, entityID); err != nil {
		return err
	}
	c.dir.InvalidateMembership(kind, entityID, groupID)
	return nil
}

// MoveToGroup adds the entity to the target group, then removes it from
// each of the given source groups. The add happens first so the entity is
// never left orphaned; it is not undone when removals fail. Removal
// failures are recorded in the report, one per source group, and do not
// abort the remaining removals. A source equal to the target is skipped.
func (c *Coordinator) MoveToGroup(ctx context.Context, kind domain.Kind, entityID, targetGroupID string, sourceGroupIDs []string) (domain.MoveReport, error) {
	release, err := c.acquire(entityID, targetGroupID)
	if err != nil {
		return domain.MoveReport{}, err
	}
	defer release()

	if err := c.add(ctx, kind, entityID, targetGroupID); err != nil {
		return domain.MoveReport{}, err
	}
	report := domain.MoveReport{Added: true}

	for _, sourceID := range sourceGroupIDs {
		if sourceID == targetGroupID {
			continue
		}

		removal := domain.Removal{GroupID: sourceID, OK: true}
		if err := c.removeSource(ctx, entityID, sourceID); err != nil {
			removal.OK = false
			removal.Err = err
			c.log.Error(zerr.With(zerr.With(err, "group", sourceID), "entity", entityID))
		} else {
			c.dir.InvalidateMembership(kind, entityID, sourceID)
		}
		report.Removed = append(report.Removed, removal)
	}

	return report, nil
}

func (c *Coordinator) add(ctx context.Context, kind domain.Kind, entityID, groupID string) error {
	err := c.graph.AddMember(ctx, groupID, entityID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadyMember):
		c.log.Info(fmt.Sprintf("entity %s is already a member of %s", entityID, groupID))
	default:
		return err
	}

	c.dir.InvalidateMembership(kind, entityID, groupID)
	return nil
}

// removeSource guards each removal edge independently, so a concurrent
// mutation of one source group blocks only that removal.
func (c *Coordinator) removeSource(ctx context.Context, entityID, groupID string) error {
	release, err := c.acquire(entityID, groupID)
	if err != nil {
		return err
	}
	defer release()

	return c.graph.RemoveMember(ctx, groupID, entityID)
}

// acquire claims the mutation slot for one membership edge. A second
// claim while the first is held fails fast with ErrMutationInProgress
// instead of queueing.
func (c *Coordinator) acquire(entityID, groupID string) (func(), error) {
	edge := groupID + "/" + entityID

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[edge]; busy {
		err := zerr.With(zerr.Wrap(domain.ErrMutationInProgress, "edge busy"), "group", groupID)
		return nil, zerr.With(err, "entity", entityID)
	}
	c.inFlight[edge] = struct{}{}

	return func() {
		c.mu.Lock()
		delete(c.inFlight, edge)
		c.mu.Unlock()
	}, nil
}
