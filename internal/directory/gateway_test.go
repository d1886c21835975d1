package directory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/adapters/store"
	"go.trai.ch/grove/internal/cache"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.trai.ch/grove/internal/directory"
	"go.uber.org/mock/gomock"
)

func newCache(t *testing.T) *cache.Cache {
	t.Helper()
	return cache.New(store.NewMemoryStore(0), logger.Discard())
}

func TestGateway_UsersCachedAfterFirstFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	g := directory.New(graph, newCache(t))

	users := []domain.User{{ID: "u1", DisplayName: "Alice"}}
	graph.EXPECT().FetchUsers(gomock.Any(), "").Return(users, nil).Times(1)

	got, err := g.Users(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, users, got)

	// Second call is served from cache; the mock would fail on a second fetch.
	got, err = g.Users(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestGateway_SearchBypassesCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	c := newCache(t)
	g := directory.New(graph, c)

	graph.EXPECT().FetchUsers(gomock.Any(), "ali").
		Return([]domain.User{{ID: "u1", DisplayName: "Alice"}}, nil).Times(2)

	for range 2 {
		got, err := g.Users(context.Background(), "ali")
		require.NoError(t, err)
		require.Len(t, got, 1)
	}

	// Search results never land in the cache.
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestGateway_FetchErrorWrapped(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	g := directory.New(graph, newCache(t))

	boom := errors.New("http 503")
	graph.EXPECT().FetchGroups(gomock.Any(), "").Return(nil, boom).Times(1)

	_, err := g.Groups(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrDirectoryFetch)
	require.ErrorIs(t, err, boom)
}

func TestGateway_FetchErrorNotCached(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	g := directory.New(graph, newCache(t))

	groups := []domain.Group{{ID: "g1", DisplayName: "Engineering"}}
	gomock.InOrder(
		graph.EXPECT().FetchGroups(gomock.Any(), "").Return(nil, errors.New("http 503")),
		graph.EXPECT().FetchGroups(gomock.Any(), "").Return(groups, nil),
	)

	_, err := g.Groups(context.Background(), "")
	require.Error(t, err)

	got, err := g.Groups(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, groups, got)
}

func TestGateway_GroupMembersRoundTrip(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	g := directory.New(graph, newCache(t))

	members := []domain.Entity{
		domain.User{ID: "u1", DisplayName: "Alice"},
		domain.Group{ID: "g2", DisplayName: "Nested"},
		domain.Device{ID: "d1", DisplayName: "LAPTOP-01"},
	}
	graph.EXPECT().FetchGroupMembers(gomock.Any(), "g1").Return(members, nil).Times(1)

	for range 2 {
		got, err := g.GroupMembers(context.Background(), "g1")
		require.NoError(t, err)
		// Kinds and identity survive the cache round trip.
		require.Len(t, got, 3)
		assert.Equal(t, domain.KindUser, got[0].EntityKind())
		assert.Equal(t, domain.KindGroup, got[1].EntityKind())
		assert.Equal(t, domain.KindDevice, got[2].EntityKind())
		assert.Equal(t, "u1", got[0].EntityID())
	}
}

func TestGateway_ConcurrentMissesSingleFetch(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	g := directory.New(graph, newCache(t))

	graph.EXPECT().FetchUserGroups(gomock.Any(), "u1").
		Return([]domain.Group{{ID: "g1"}}, nil).Times(1)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := g.UserGroups(context.Background(), "u1")
			assert.NoError(t, err)
			assert.Len(t, got, 1)
		}()
	}
	wg.Wait()
}

func TestGateway_InvalidateMembership(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	c := newCache(t)
	g := directory.New(graph, c)

	graph.EXPECT().FetchUserGroups(gomock.Any(), "u1").
		Return([]domain.Group{{ID: "g1"}}, nil).Times(2)
	graph.EXPECT().FetchGroupMembers(gomock.Any(), "g1").
		Return([]domain.Entity{domain.User{ID: "u1"}}, nil).Times(2)
	graph.EXPECT().FetchGroups(gomock.Any(), "").
		Return([]domain.Group{{ID: "g1"}}, nil).Times(1)

	_, err := g.UserGroups(context.Background(), "u1")
	require.NoError(t, err)
	_, err = g.GroupMembers(context.Background(), "g1")
	require.NoError(t, err)
	_, err = g.Groups(context.Background(), "")
	require.NoError(t, err)

	g.InvalidateMembership(domain.KindUser, "u1", "g1")

	// Membership edges refetch; the group listing stays cached.
	_, err = g.UserGroups(context.Background(), "u1")
	require.NoError(t, err)
	_, err = g.GroupMembers(context.Background(), "g1")
	require.NoError(t, err)
	_, err = g.Groups(context.Background(), "")
	require.NoError(t, err)
}

func TestGateway_InvalidateRelationsIsScopedToOneEntity(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockGraphClient(ctrl)
	c := newCache(t)
	g := directory.New(graph, c)

	graph.EXPECT().FetchGroupMembers(gomock.Any(), "g1").
		Return([]domain.Entity{domain.User{ID: "u1"}}, nil).Times(2)
	graph.EXPECT().FetchGroupMemberOf(gomock.Any(), "g1").
		Return([]domain.Group{{ID: "parent"}}, nil).Times(2)
	graph.EXPECT().FetchUserGroups(gomock.Any(), "u1").
		Return([]domain.Group{{ID: "g1"}}, nil).Times(1)

	_, err := g.GroupMembers(context.Background(), "g1")
	require.NoError(t, err)
	_, err = g.GroupMemberOf(context.Background(), "g1")
	require.NoError(t, err)
	_, err = g.UserGroups(context.Background(), "u1")
	require.NoError(t, err)

	g.InvalidateRelations(domain.KindGroup, "g1")

	// Both of g1's relation edges refetch; u1's memberships stay cached.
	_, err = g.GroupMembers(context.Background(), "g1")
	require.NoError(t, err)
	_, err = g.GroupMemberOf(context.Background(), "g1")
	require.NoError(t, err)
	_, err = g.UserGroups(context.Background(), "u1")
	require.NoError(t, err)
}
