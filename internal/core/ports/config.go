package ports

import "go.trai.ch/grove/internal/core/domain"

// ConfigLoader resolves the session configuration starting from a working
// directory. A missing config file yields defaults, not an error.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	Load(cwd string) (domain.Config, error)
}
