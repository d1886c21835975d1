package mutation

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/adapters/msgraph"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/directory"
)

// NodeID is the unique identifier for the mutation coordinator Graft node.
const NodeID graft.ID = "engine.mutation"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{msgraph.NodeID, directory.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Coordinator, error) {
			graph, err := graft.Dep[ports.GraphClient](ctx)
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
			return New(graph, dir, log), nil
		},
	})
}
