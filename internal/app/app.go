package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/grove/internal/adapters/tui"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/mutation"
	"go.trai.ch/zerr"
)

// App is the facade the CLI commands drive.
type App struct {
	session    *Session
	dir        ports.Directory
	mut        *mutation.Coordinator
	cache      *cache.Cache
	logger     ports.Logger
	teaOptions []tea.ProgramOption
}

// New creates a new App instance.
func New(
	session *Session,
	dir ports.Directory,
	mut *mutation.Coordinator,
	c *cache.Cache,
	log ports.Logger,
) *App {
	return &App{
		session: session,
		dir:     dir,
		mut:     mut,
		cache:   c,
		logger:  log,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// Session exposes the explorer session.
func (a *App) Session() *Session {
	return a.session
}

// BuildTree selects a root entity and expands it breadth-first down to
// depth levels. Depth 0 returns just the root.
func (a *App) BuildTree(ctx context.Context, kind domain.Kind, query string, depth int) (*domain.TreeNode, error) {
	root, err := a.session.SelectRoot(ctx, kind, query)
	if err != nil {
		return nil, err
	}

	frontier := []string{root.NodeID}
	for level := 0; level < depth && len(frontier) > 0; level++ {
		var next []string
		for _, nodeID := range frontier {
			tree, err := a.session.Expand(ctx, nodeID)
			if err != nil {
				return nil, err
			}
			node := domain.FindNode(tree, nodeID)
			if node == nil {
				continue
			}
			for _, child := range node.Children {
				// Only groups fan out further; re-expanding a user or
				// device node would mirror its parent edge back.
				if child.Kind == domain.KindGroup {
					next = append(next, child.NodeID)
				}
			}
		}
		frontier = next
	}
	return a.session.Tree(), nil
}

// Add adds an entity to a group. Both arguments resolve by id or name.
func (a *App) Add(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) error {
	entity, group, err := a.resolvePair(ctx, kind, entityQuery, groupQuery)
	if err != nil {
		return err
	}
	return a.mut.AddToGroup(ctx, kind, entity.EntityID(), group.EntityID())
}

// Remove removes an entity from a group.
func (a *App) Remove(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) error {
	entity, group, err := a.resolvePair(ctx, kind, entityQuery, groupQuery)
	if err != nil {
		return err
	}
	return a.mut.RemoveFromGroup(ctx, kind, entity.EntityID(), group.EntityID())
}

// Move adds the entity to the target group and removes it from every other
// group it is currently a direct member of. The source set comes from the
// directory gateway, so it reflects at-most-TTL-stale memberships; a stale
// source shows up as a failed removal in the report rather than an error.
func (a *App) Move(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) (domain.MoveReport, error) {
	entity, group, err := a.resolvePair(ctx, kind, entityQuery, groupQuery)
	if err != nil {
		return domain.MoveReport{}, err
	}

	sources, err := a.memberOf(ctx, kind, entity.EntityID())
	if err != nil {
		return domain.MoveReport{}, err
	}
	return a.mut.MoveToGroup(ctx, kind, entity.EntityID(), group.EntityID(), sources)
}

// memberOf lists the ids of the groups the entity is a direct member of.
func (a *App) memberOf(ctx context.Context, kind domain.Kind, entityID string) ([]string, error) {
	var groups []domain.Group
	var err error
	switch kind {
	case domain.KindUser:
		groups, err = a.dir.UserGroups(ctx, entityID)
	case domain.KindGroup:
		groups, err = a.dir.GroupMemberOf(ctx, entityID)
	case domain.KindDevice:
		groups, err = a.dir.DeviceGroups(ctx, entityID)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrEntityNotFound, "unknown kind"), "kind", string(kind))
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

// List returns the entities of the given kind, optionally narrowed by a
// server-side search. Search results always come fresh from the directory.
func (a *App) List(ctx context.Context, kind domain.Kind, search string) ([]domain.Entity, error) {
	switch kind {
	case domain.KindUser:
		users, err := a.dir.Users(ctx, search)
		if err != nil {
			return nil, err
		}
		entities := make([]domain.Entity, 0, len(users))
		for _, u := range users {
			entities = append(entities, u)
		}
		return entities, nil
	case domain.KindGroup:
		groups, err := a.dir.Groups(ctx, search)
		if err != nil {
			return nil, err
		}
		entities := make([]domain.Entity, 0, len(groups))
		for _, g := range groups {
			entities = append(entities, g)
		}
		return entities, nil
	case domain.KindDevice:
		devices, err := a.dir.Devices(ctx, search)
		if err != nil {
			return nil, err
		}
		entities := make([]domain.Entity, 0, len(devices))
		for _, d := range devices {
			entities = append(entities, d)
		}
		return entities, nil
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrEntityNotFound, "unknown kind"), "kind", string(kind))
}

// CacheStats reports hit, miss, and entry counts for the lookup cache.
func (a *App) CacheStats() cache.Stats {
	return a.cache.Stats()
}

// ClearCache drops every cached directory entry.
func (a *App) ClearCache() {
	a.cache.Clear()
}

// Explore runs the interactive tree explorer rooted at the given entity.
func (a *App) Explore(ctx context.Context, kind domain.Kind, query string) error {
	if _, err := a.session.SelectRoot(ctx, kind, query); err != nil {
		return err
	}

	model := tui.NewModel(a)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return zerr.Wrap(err, "running explorer")
	}
	return nil
}

func (a *App) resolvePair(ctx context.Context, kind domain.Kind, entityQuery, groupQuery string) (domain.Entity, domain.Entity, error) {
	entity, err := a.session.ResolveEntity(ctx, kind, entityQuery)
	if err != nil {
		return nil, nil, err
	}
	group, err := a.session.ResolveEntity(ctx, domain.KindGroup, groupQuery)
	if err != nil {
		return nil, nil, err
	}
	return entity, group, nil
}

// Controller surface consumed by the TUI.

// Tree returns the current snapshot.
func (a *App) Tree() *domain.TreeNode { return a.session.Tree() }

// Expanded returns the expanded set matching the current snapshot.
func (a *App) Expanded() domain.ExpandedSet { return a.session.Expanded() }

// Expand materializes nodeID's children.
func (a *App) Expand(ctx context.Context, nodeID string) (*domain.TreeNode, error) {
	return a.session.Expand(ctx, nodeID)
}

// Collapse prunes nodeID's subtree.
func (a *App) Collapse(nodeID string) (*domain.TreeNode, error) {
	return a.session.Collapse(nodeID)
}

// Invalidate drops the cached relation edges of one entity ahead of a
// refresh, leaving the rest of the cache intact.
func (a *App) Invalidate(kind domain.Kind, entityID string) {
	a.dir.InvalidateRelations(kind, entityID)
}

var _ tui.Controller = (*App)(nil)
