package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/directory"
	"go.trai.ch/grove/internal/engine/materializer"
	"go.trai.ch/grove/internal/engine/mutation"
)

// Node IDs for the application layer Graft nodes.
const (
	SessionNodeID    graft.ID = "app.session"
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles everything the command layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Session]{
		ID:        SessionNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{materializer.NodeID, directory.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Session, error) {
			mat, err := graft.Dep[*materializer.Materializer](ctx)
			if err != nil {
				return nil, err
			}
			dir, err := graft.Dep[*directory.Gateway](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewSession(mat, dir, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			SessionNodeID,
			directory.NodeID,
			mutation.NodeID,
			cache.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			session, err := graft.Dep[*Session](ctx)
			if err != nil {
				return nil, err
			}
			dir, err := graft.Dep[*directory.Gateway](ctx)
			if err != nil {
				return nil, err
			}
			mut, err := graft.Dep[*mutation.Coordinator](ctx)
			if err != nil {
				return nil, err
			}
			c, err := graft.Dep[*cache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{
				App:    New(session, dir, mut, c, log),
				Logger: log,
			}, nil
		},
	})
}
