package materializer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/directory"
)

// NodeID is the unique identifier for the materializer Graft node.
const NodeID graft.ID = "engine.materializer"

func init() {
	graft.Register(graft.Node[*Materializer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{directory.NodeID},
		Run: func(ctx context.Context) (*Materializer, error) {
			dir, err := graft.Dep[*directory.Gateway](ctx)
			if err != nil {
				return nil, err
			}
			return New(dir), nil
		},
	})
}
