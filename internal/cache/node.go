package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/config"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/adapters/store"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the lookup cache Graft node.
const NodeID graft.ID = "cache.lookup"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID, logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			backing, err := graft.Dep[ports.BackingStore](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			ttls := DefaultTTLs()
			for name, ttl := range cfg.TTLs {
				if _, ok := ttls[Category(name)]; ok && ttl > 0 {
					ttls[Category(name)] = ttl
				}
			}

			return New(backing, log, WithTTLs(ttls)), nil
		},
	})
}
