package ports

import (
	"context"

	"go.trai.ch/grove/internal/core/domain"
)

// Directory is the cached read surface over the tenant directory. Listing
// calls with an empty search term may be served from cache; a non-empty
// search always reaches the directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=directory.go -destination=mocks/mock_directory.go -package=mocks
type Directory interface {
	Users(ctx context.Context, search string) ([]domain.User, error)
	Groups(ctx context.Context, search string) ([]domain.Group, error)
	Devices(ctx context.Context, search string) ([]domain.Device, error)

	UserGroups(ctx context.Context, userID string) ([]domain.Group, error)
	GroupMembers(ctx context.Context, groupID string) ([]domain.Entity, error)
	GroupMemberOf(ctx context.Context, groupID string) ([]domain.Group, error)
	DeviceGroups(ctx context.Context, deviceID string) ([]domain.Group, error)

	// InvalidateMembership drops the cached membership edges touched by a
	// mutation of entity's membership in group.
	InvalidateMembership(kind domain.Kind, entityID, groupID string)

	// InvalidateRelations drops the cached relation edges of a single
	// entity, forcing the next lookup of its memberships to refetch.
	InvalidateRelations(kind domain.Kind, entityID string)
}
