// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/grove/internal/adapters/config"
	_ "go.trai.ch/grove/internal/adapters/logger"
	_ "go.trai.ch/grove/internal/adapters/msgraph"
	_ "go.trai.ch/grove/internal/adapters/store"
	// Register cache, gateway, engine, and app nodes.
	_ "go.trai.ch/grove/internal/app"
	_ "go.trai.ch/grove/internal/cache"
	_ "go.trai.ch/grove/internal/directory"
	_ "go.trai.ch/grove/internal/engine/materializer"
	_ "go.trai.ch/grove/internal/engine/mutation"
)
