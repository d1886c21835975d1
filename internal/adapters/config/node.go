package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
)

// NodeID is the unique identifier for the resolved configuration Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return domain.Config{}, err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return domain.Config{}, err
			}

			cfg, err := NewLoader(log).Load(cwd)
			if err != nil {
				return domain.Config{}, err
			}

			if l, ok := log.(*logger.Logger); ok {
				l.SetJSON(cfg.LogJSON)
			}
			return cfg, nil
		},
	})
}
