// Package directory provides the cached gateway in front of the Microsoft
// Graph client. Reads check the lookup cache first; concurrent misses for
// the same key collapse into a single upstream fetch.
package directory

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Cache keys for directory listings. Membership keys are derived per entity.
const (
	keyUsers   = "users:all"
	keyGroups  = "groups:all"
	keyDevices = "devices:all"
)

// Gateway mediates every directory read. It owns the cache-then-fetch
// policy; callers never talk to the Graph client directly.
type Gateway struct {
	graph  ports.GraphClient
	cache  *cache.Cache
	flight singleflight.Group
	tracer trace.Tracer
}

// New creates a Gateway over the given Graph client and cache.
func New(graph ports.GraphClient, c *cache.Cache) *Gateway {
	return &Gateway{
		graph:  graph,
		cache:  c,
		tracer: otel.Tracer("grove.directory"),
	}
}

// Users lists directory users. A non-empty search term always goes to the
// directory; search results are never cached.
func (g *Gateway) Users(ctx context.Context, search string) ([]domain.User, error) {
	ctx, span := g.tracer.Start(ctx, "directory.Users")
	defer span.End()

	if search != "" {
		return direct(ctx, span, "users", func(ctx context.Context) ([]domain.User, error) {
			return g.graph.FetchUsers(ctx, search)
		})
	}
	return lookup(ctx, g, span, keyUsers, cache.CategoryUsers, func(ctx context.Context) ([]domain.User, error) {
		return g.graph.FetchUsers(ctx, "")
	})
}

// Groups lists directory groups. Search results bypass the cache.
func (g *Gateway) Groups(ctx context.Context, search string) ([]domain.Group, error) {
	ctx, span := g.tracer.Start(ctx, "directory.Groups")
	defer span.End()

	if search != "" {
		return direct(ctx, span, "groups", func(ctx context.Context) ([]domain.Group, error) {
			return g.graph.FetchGroups(ctx, search)
		})
	}
	return lookup(ctx, g, span, keyGroups, cache.CategoryGroups, func(ctx context.Context) ([]domain.Group, error) {
		return g.graph.FetchGroups(ctx, "")
	})
}

// Devices lists directory devices. Search results bypass the cache.
func (g *Gateway) Devices(ctx context.Context, search string) ([]domain.Device, error) {
	ctx, span := g.tracer.Start(ctx, "directory.Devices")
	defer span.End()

	if search != "" {
		return direct(ctx, span, "devices", func(ctx context.Context) ([]domain.Device, error) {
			return g.graph.FetchDevices(ctx, search)
		})
	}
	return lookup(ctx, g, span, keyDevices, cache.CategoryDevices, func(ctx context.Context) ([]domain.Device, error) {
		return g.graph.FetchDevices(ctx, "")
	})
}

// UserGroups lists the groups a user is a direct member of.
func (g *Gateway) UserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	ctx, span := g.tracer.Start(ctx, "directory.UserGroups")
	defer span.End()

	return lookup(ctx, g, span, UserMemberOfKey(userID), cache.CategoryMemberships, func(ctx context.Context) ([]domain.Group, error) {
		return g.graph.FetchUserGroups(ctx, userID)
	})
}

// GroupMembers lists the direct members of a group, across entity kinds.
func (g *Gateway) GroupMembers(ctx context.Context, groupID string) ([]domain.Entity, error) {
	ctx, span := g.tracer.Start(ctx, "directory.GroupMembers")
	defer span.End()

	records, err := lookup(ctx, g, span, GroupMembersKey(groupID), cache.CategoryMemberships, func(ctx context.Context) ([]memberRecord, error) {
		members, err := g.graph.FetchGroupMembers(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return encodeMembers(members), nil
	})
	if err != nil {
		return nil, err
	}
	return decodeMembers(records), nil
}

// GroupMemberOf lists the groups a group is nested in.
func (g *Gateway) GroupMemberOf(ctx context.Context, groupID string) ([]domain.Group, error) {
	ctx, span := g.tracer.Start(ctx, "directory.GroupMemberOf")
	defer span.End()

	return lookup(ctx, g, span, GroupMemberOfKey(groupID), cache.CategoryMemberships, func(ctx context.Context) ([]domain.Group, error) {
		return g.graph.FetchGroupMemberOf(ctx, groupID)
	})
}

// DeviceGroups lists the groups a device is a direct member of.
func (g *Gateway) DeviceGroups(ctx context.Context, deviceID string) ([]domain.Group, error) {
	ctx, span := g.tracer.Start(ctx, "directory.DeviceGroups")
	defer span.End()

	return lookup(ctx, g, span, DeviceMemberOfKey(deviceID), cache.CategoryMemberships, func(ctx context.Context) ([]domain.Group, error) {
		return g.graph.FetchDeviceGroups(ctx, deviceID)
	})
}

// InvalidateMembership drops the cached membership edges touched by adding
// or removing entity in group: the group's member list and the entity's
// memberOf list. Listings stay cached.
func (g *Gateway) InvalidateMembership(kind domain.Kind, entityID, groupID string) {
	g.cache.Remove(GroupMembersKey(groupID))
	g.cache.Remove(GroupMemberOfKey(groupID))

	switch kind {
	case domain.KindUser:
		g.cache.Remove(UserMemberOfKey(entityID))
	case domain.KindGroup:
		g.cache.Remove(GroupMemberOfKey(entityID))
	case domain.KindDevice:
		g.cache.Remove(DeviceMemberOfKey(entityID))
	}
}

// InvalidateRelations drops the cached relation edges of a single entity,
// so a refresh of that node refetches its memberships without discarding
// the rest of the cache.
func (g *Gateway) InvalidateRelations(kind domain.Kind, entityID string) {
	switch kind {
	case domain.KindUser:
		g.cache.Remove(UserMemberOfKey(entityID))
	case domain.KindGroup:
		g.cache.Remove(GroupMembersKey(entityID))
		g.cache.Remove(GroupMemberOfKey(entityID))
	case domain.KindDevice:
		g.cache.Remove(DeviceMemberOfKey(entityID))
	}
}

// UserMemberOfKey is the cache key for a user's direct group memberships.
func UserMemberOfKey(userID string) string { return "users:memberOf:" + userID }

// GroupMembersKey is the cache key for a group's direct members.
func GroupMembersKey(groupID string) string { return "groups:members:" + groupID }

// GroupMemberOfKey is the cache key for a group's parent groups.
func GroupMemberOfKey(groupID string) string { return "groups:memberOf:" + groupID }

// DeviceMemberOfKey is the cache key for a device's direct group memberships.
func DeviceMemberOfKey(deviceID string) string { return "devices:memberOf:" + deviceID }

// lookup runs the check-cache, fetch, store sequence for one key. Misses
// for the same key are deduplicated through the singleflight group, with a
// second cache check inside the flight so waiters reuse a fresh store.
func lookup[T any](ctx context.Context, g *Gateway, span trace.Span, key string, cat cache.Category, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	if g.cache.Get(key, &cached) {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	v, err, shared := g.flight.Do(key, func() (any, error) {
		var again T
		if g.cache.Get(key, &again) {
			return again, nil
		}
		fetched, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		g.cache.Set(key, cat, fetched)
		return fetched, nil
	})
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, zerr.With(errors.Join(domain.ErrDirectoryFetch, err), "key", key)
	}
	span.SetAttributes(attribute.Bool("flight.shared", shared))
	return v.(T), nil
}

var _ ports.Directory = (*Gateway)(nil)

// direct fetches without touching the cache, wrapping failures the same
// way lookup does.
func direct[T any](ctx context.Context, span trace.Span, scope string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := fetch(ctx)
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, zerr.With(errors.Join(domain.ErrDirectoryFetch, err), "scope", scope)
	}
	return v, nil
}
