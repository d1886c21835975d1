package msgraph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/config"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the Graph client Graft node.
const NodeID graft.ID = "adapter.msgraph"

func init() {
	graft.Register(graft.Node[ports.GraphClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.GraphClient, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			tokens := NewEnvTokenProvider(cfg.TokenEnv)
			return NewClient(cfg.GraphBaseURL, tokens), nil
		},
	})
}
