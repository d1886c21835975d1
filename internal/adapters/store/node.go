package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/config"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the backing store Graft node.
const NodeID graft.ID = "adapter.store"

func init() {
	graft.Register(graft.Node[ports.BackingStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.BackingStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			if cfg.CachePath == "" {
				return NewMemoryStore(cfg.CacheMaxBytes), nil
			}
			return NewFileStore(cfg.CachePath, cfg.CacheMaxBytes)
		},
	})
}
