package directory

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/msgraph"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the directory gateway Graft node.
const NodeID graft.ID = "directory.gateway"

func init() {
	graft.Register(graft.Node[*Gateway]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{msgraph.NodeID, cache.NodeID},
		Run: func(ctx context.Context) (*Gateway, error) {
			graph, err := graft.Dep[ports.GraphClient](ctx)
			if err != nil {
				return nil, err
			}
			c, err := graft.Dep[*cache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			return New(graph, c), nil
		},
	})
}
