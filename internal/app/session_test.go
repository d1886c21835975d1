package app_test

import (
	"context"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/grove/internal/adapters/logger"
	"go.trai.ch/grove/internal/app"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports/mocks"
	"go.trai.ch/grove/internal/engine/materializer"
	"go.uber.org/mock/gomock"
)

func newSession(t *testing.T) (*app.Session, *mocks.MockDirectory) {
	t.Helper()
	ctrl := gomock.NewController(t)
	dir := mocks.NewMockDirectory(ctrl)
	return app.NewSession(materializer.New(dir), dir, logger.Discard()), dir
}

func TestSession_SelectRootByName(t *testing.T) {
	t.Parallel()

	s, dir := newSession(t)
	dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
		{ID: "G", DisplayName: "Engineering"},
		{ID: "H", DisplayName: "Platform"},
	}, nil)

	root, err := s.SelectRoot(context.Background(), domain.KindGroup, "engineering")
	require.NoError(t, err)
	assert.Equal(t, "group-G", root.NodeID)
	assert.Equal(t, root, s.Tree())
}

func TestSession_SelectRootByUserPrincipalName(t *testing.T) {
	t.Parallel()

	s, dir := newSession(t)
	dir.EXPECT().Users(gomock.Any(), "").Return([]domain.User{
		{ID: "u1", DisplayName: "Alice", UserPrincipalName: "alice@contoso.com"},
	}, nil)

	root, err := s.SelectRoot(context.Background(), domain.KindUser, "ALICE@contoso.com")
	require.NoError(t, err)
	assert.Equal(t, "user-u1", root.NodeID)
}

func TestSession_SelectRootAmbiguousName(t *testing.T) {
	t.Parallel()

	s, dir := newSession(t)
	dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
		{ID: "G1", DisplayName: "Engineering"},
		{ID: "G2", DisplayName: "Engineering"},
	}, nil)

	_, err := s.SelectRoot(context.Background(), domain.KindGroup, "Engineering")
	require.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestSession_IDMatchBeatsNameMatch(t *testing.T) {
	t.Parallel()

	s, dir := newSession(t)
	dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
		{ID: "Engineering", DisplayName: "Old"},
		{ID: "G2", DisplayName: "Engineering"},
	}, nil)

	root, err := s.SelectRoot(context.Background(), domain.KindGroup, "Engineering")
	require.NoError(t, err)
	assert.Equal(t, "group-Engineering", root.NodeID)
}

func TestSession_ExpandWithoutRoot(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	_, err := s.Expand(context.Background(), "group-G")
	require.ErrorIs(t, err, domain.ErrNoRootSelected)

	_, err = s.Collapse("group-G")
	require.ErrorIs(t, err, domain.ErrNoRootSelected)
}

func TestSession_ExpandCommits(t *testing.T) {
	t.Parallel()

	s, dir := newSession(t)
	dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
		{ID: "G", DisplayName: "Engineering"},
	}, nil)
	dir.EXPECT().GroupMembers(gomock.Any(), "G").Return([]domain.Entity{
		domain.User{ID: "alice", DisplayName: "Alice"},
	}, nil)
	dir.EXPECT().GroupMemberOf(gomock.Any(), "G").Return(nil, nil)

	_, err := s.SelectRoot(context.Background(), domain.KindGroup, "G")
	require.NoError(t, err)

	tree, err := s.Expand(context.Background(), "group-G")
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.True(t, s.Expanded().Contains("group-G"))
	assert.Equal(t, tree, s.Tree())
}

func TestSession_StaleExpansionDiscarded(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, dir := newSession(t)

		dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
			{ID: "G", DisplayName: "Engineering"},
		}, nil)
		dir.EXPECT().Users(gomock.Any(), "").Return([]domain.User{
			{ID: "u1", DisplayName: "Alice"},
		}, nil)

		fetching := make(chan struct{})
		finish := make(chan struct{})
		dir.EXPECT().GroupMembers(gomock.Any(), "G").
			DoAndReturn(func(context.Context, string) ([]domain.Entity, error) {
				close(fetching)
				<-finish
				return []domain.Entity{domain.User{ID: "bob"}}, nil
			})
		dir.EXPECT().GroupMemberOf(gomock.Any(), "G").Return(nil, nil)

		_, err := s.SelectRoot(context.Background(), domain.KindGroup, "G")
		require.NoError(t, err)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, err := s.Expand(context.Background(), "group-G")
			assert.NoError(t, err)
		}()

		// While the expansion is fetching, the user selects a new root.
		<-fetching
		_, err = s.SelectRoot(context.Background(), domain.KindUser, "u1")
		require.NoError(t, err)

		close(finish)
		<-done

		// The stale expansion never landed.
		assert.Equal(t, "user-u1", s.Tree().NodeID)
		assert.False(t, s.Expanded().Contains("group-G"))
	})
}

func TestSession_ConcurrentExpansionsFirstCommitWins(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, dir := newSession(t)

		dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
			{ID: "G", DisplayName: "Engineering"},
		}, nil)
		dir.EXPECT().GroupMembers(gomock.Any(), "G").Return([]domain.Entity{
			domain.Group{ID: "g1", DisplayName: "Backend"},
			domain.Group{ID: "g2", DisplayName: "Frontend"},
		}, nil)
		dir.EXPECT().GroupMemberOf(gomock.Any(), "G").Return(nil, nil)

		fetching1 := make(chan struct{})
		finish1 := make(chan struct{})
		dir.EXPECT().GroupMembers(gomock.Any(), "g1").
			DoAndReturn(func(context.Context, string) ([]domain.Entity, error) {
				close(fetching1)
				<-finish1
				return []domain.Entity{domain.User{ID: "alice"}}, nil
			})
		dir.EXPECT().GroupMemberOf(gomock.Any(), "g1").Return(nil, nil)

		fetching2 := make(chan struct{})
		finish2 := make(chan struct{})
		dir.EXPECT().GroupMembers(gomock.Any(), "g2").
			DoAndReturn(func(context.Context, string) ([]domain.Entity, error) {
				close(fetching2)
				<-finish2
				return []domain.Entity{domain.User{ID: "bob"}}, nil
			})
		dir.EXPECT().GroupMemberOf(gomock.Any(), "g2").Return(nil, nil)

		_, err := s.SelectRoot(context.Background(), domain.KindGroup, "G")
		require.NoError(t, err)
		_, err = s.Expand(context.Background(), "group-G")
		require.NoError(t, err)

		// Two expansions race against the same snapshot.
		done1 := make(chan struct{})
		go func() {
			defer close(done1)
			_, err := s.Expand(context.Background(), "group-G-member-g1")
			assert.NoError(t, err)
		}()
		done2 := make(chan struct{})
		go func() {
			defer close(done2)
			_, err := s.Expand(context.Background(), "group-G-member-g2")
			assert.NoError(t, err)
		}()

		<-fetching1
		<-fetching2
		close(finish1)
		<-done1
		close(finish2)
		<-done2

		// The first commit bumped the generation, so the second result was
		// dropped rather than merged into a snapshot it never saw.
		tree := s.Tree()
		g1 := domain.FindNode(tree, "group-G-member-g1")
		require.NotNil(t, g1)
		assert.Len(t, g1.Children, 1)
		g2 := domain.FindNode(tree, "group-G-member-g2")
		require.NotNil(t, g2)
		assert.Empty(t, g2.Children)
		assert.True(t, s.Expanded().Contains("group-G-member-g1"))
		assert.False(t, s.Expanded().Contains("group-G-member-g2"))
	})
}

func TestSession_CollapseCommitsSynchronously(t *testing.T) {
	t.Parallel()

	s, dir := newSession(t)
	dir.EXPECT().Groups(gomock.Any(), "").Return([]domain.Group{
		{ID: "G", DisplayName: "Engineering"},
	}, nil)
	dir.EXPECT().GroupMembers(gomock.Any(), "G").Return([]domain.Entity{
		domain.User{ID: "alice", DisplayName: "Alice"},
	}, nil)
	dir.EXPECT().GroupMemberOf(gomock.Any(), "G").Return(nil, nil)

	_, err := s.SelectRoot(context.Background(), domain.KindGroup, "G")
	require.NoError(t, err)
	_, err = s.Expand(context.Background(), "group-G")
	require.NoError(t, err)

	tree, err := s.Collapse("group-G")
	require.NoError(t, err)
	assert.Empty(t, tree.Children)
	assert.False(t, s.Expanded().Contains("group-G"))
}
