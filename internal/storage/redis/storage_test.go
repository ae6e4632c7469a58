package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/borga-dev/borga/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		Username: "alice",
		Groups:   []model.GroupID{1, 2},
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Username)
	s.Equal([]model.GroupID{1, 2}, retrieved.Groups)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUser() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice"})

	err := s.storage.DeleteUser(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.GetUser(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestDeleteUserNotFound() {
	err := s.storage.DeleteUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsers() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "bob"})
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice"})

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
	s.Equal("alice", users[0].Username)
	s.Equal("bob", users[1].Username)
}

// Token tests

func (s *StorageSuite) TestSaveAndResolveToken() {
	err := s.storage.SaveToken(s.ctx, "tok-1", "alice")
	s.Require().NoError(err)

	username, err := s.storage.ResolveToken(s.ctx, "tok-1")
	s.Require().NoError(err)
	s.Equal("alice", username)
}

func (s *StorageSuite) TestResolveTokenUnknown() {
	_, err := s.storage.ResolveToken(s.ctx, "nope")
	s.ErrorIs(err, model.ErrUnknownToken)
}

func (s *StorageSuite) TestDeleteTokensForUser() {
	_ = s.storage.SaveToken(s.ctx, "tok-1", "alice")
	_ = s.storage.SaveToken(s.ctx, "tok-2", "bob")

	err := s.storage.DeleteTokensForUser(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.storage.ResolveToken(s.ctx, "tok-1")
	s.ErrorIs(err, model.ErrUnknownToken)

	username, err := s.storage.ResolveToken(s.ctx, "tok-2")
	s.Require().NoError(err)
	s.Equal("bob", username)
}

// Group tests

func (s *StorageSuite) TestNextGroupIDMonotonic() {
	id1, err := s.storage.NextGroupID(s.ctx)
	s.Require().NoError(err)
	id2, err := s.storage.NextGroupID(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.GroupID(1), id1)
	s.Equal(model.GroupID(2), id2)
}

func (s *StorageSuite) TestSaveAndGetGroup() {
	group := &model.Group{
		ID:          1,
		Owner:       "alice",
		Name:        "Board Nights",
		Description: "weekly",
		Games:       []model.Game{{ID: "G1", Name: "Catan", Price: "45.4"}},
	}

	err := s.storage.SaveGroup(s.ctx, group)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGroup(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal("alice", retrieved.Owner)
	s.Equal("Catan", retrieved.Games[0].Name)
}

func (s *StorageSuite) TestDeleteGroup() {
	_ = s.storage.SaveGroup(s.ctx, &model.Group{ID: 1, Owner: "alice", Name: "g"})

	err := s.storage.DeleteGroup(s.ctx, 1)
	s.Require().NoError(err)

	_, err = s.storage.GetGroup(s.ctx, 1)
	s.ErrorIs(err, model.ErrGroupNotFound)
}

func (s *StorageSuite) TestDeleteGroupNotFound() {
	err := s.storage.DeleteGroup(s.ctx, 42)
	s.ErrorIs(err, model.ErrGroupNotFound)
}

func (s *StorageSuite) TestGroupExists() {
	_ = s.storage.SaveGroup(s.ctx, &model.Group{ID: 1, Owner: "alice", Name: "g"})

	exists, err := s.storage.GroupExists(s.ctx, 1)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GroupExists(s.ctx, 2)
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestListGroupsSortedByID() {
	_ = s.storage.SaveGroup(s.ctx, &model.Group{ID: 2, Owner: "bob", Name: "b"})
	_ = s.storage.SaveGroup(s.ctx, &model.Group{ID: 1, Owner: "alice", Name: "a"})

	groups, err := s.storage.ListGroups(s.ctx)
	s.Require().NoError(err)
	s.Len(groups, 2)
	s.Equal(model.GroupID(1), groups[0].ID)
	s.Equal(model.GroupID(2), groups[1].ID)
}

// Reset tests

func (s *StorageSuite) TestClearGroupsKeepsCounter() {
	id1, _ := s.storage.NextGroupID(s.ctx)
	_ = s.storage.SaveGroup(s.ctx, &model.Group{ID: id1, Owner: "alice", Name: "g"})

	err := s.storage.ClearGroups(s.ctx)
	s.Require().NoError(err)

	groups, _ := s.storage.ListGroups(s.ctx)
	s.Empty(groups)

	id2, _ := s.storage.NextGroupID(s.ctx)
	s.Greater(id2, id1)
}

func (s *StorageSuite) TestClearUsersLeavesTokens() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice"})
	_ = s.storage.SaveToken(s.ctx, "tok-1", "alice")

	err := s.storage.ClearUsers(s.ctx)
	s.Require().NoError(err)

	users, _ := s.storage.ListUsers(s.ctx)
	s.Empty(users)

	_, err = s.storage.ResolveToken(s.ctx, "tok-1")
	s.NoError(err)
}
