package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage/memory"
	"github.com/borga-dev/borga/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) addUser(username string, groups ...model.GroupID) {
	s.T().Helper()
	if groups == nil {
		groups = []model.GroupID{}
	}
	err := s.storage.SaveUser(s.ctx, &model.User{Username: username, Groups: groups})
	s.Require().NoError(err)
}

func (s *ServiceSuite) addGroup(id model.GroupID, owner string) {
	s.T().Helper()
	err := s.storage.SaveGroup(s.ctx, &model.Group{ID: id, Owner: owner, Name: "g", Description: "d"})
	s.Require().NoError(err)
}

// Exists / List / Get tests

func (s *ServiceSuite) TestExists() {
	s.addUser("alice")

	exists, err := s.service.Exists(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.service.Exists(s.ctx, "bob")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *ServiceSuite) TestListReturnsUsernames() {
	s.addUser("bob")
	s.addUser("alice")

	usernames, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, usernames)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// AttachGroup tests

func (s *ServiceSuite) TestAttachGroupAppends() {
	s.addUser("alice")
	s.addGroup(1, "alice")
	s.addGroup(2, "alice")

	s.Require().NoError(s.service.AttachGroup(s.ctx, "alice", 1))
	s.Require().NoError(s.service.AttachGroup(s.ctx, "alice", 2))

	user, _ := s.service.Get(s.ctx, "alice")
	s.Equal([]model.GroupID{1, 2}, user.Groups)
}

func (s *ServiceSuite) TestAttachGroupFailsIfUserMissing() {
	s.addGroup(1, "alice")

	err := s.service.AttachGroup(s.ctx, "nobody", 1)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestAttachGroupFailsIfGroupMissing() {
	s.addUser("alice")

	err := s.service.AttachGroup(s.ctx, "alice", 42)
	s.ErrorIs(err, model.ErrGroupNotFound)
}

func (s *ServiceSuite) TestAttachGroupFailsIfAlreadyLinked() {
	s.addUser("alice")
	s.addGroup(1, "alice")
	_ = s.service.AttachGroup(s.ctx, "alice", 1)

	err := s.service.AttachGroup(s.ctx, "alice", 1)
	s.ErrorIs(err, model.ErrGroupAlreadyLinked)
}

// DetachGroup tests

func (s *ServiceSuite) TestDetachGroupRemovesByValue() {
	s.addUser("alice", 1, 2, 3)

	err := s.service.DetachGroup(s.ctx, "alice", 2)
	s.Require().NoError(err)

	user, _ := s.service.Get(s.ctx, "alice")
	s.Equal([]model.GroupID{1, 3}, user.Groups)
}

func (s *ServiceSuite) TestDetachGroupFailsIfUserMissing() {
	err := s.service.DetachGroup(s.ctx, "nobody", 1)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestDetachGroupFailsIfNotLinked() {
	s.addUser("alice", 1)

	err := s.service.DetachGroup(s.ctx, "alice", 2)
	s.ErrorIs(err, model.ErrGroupNotLinked)
}

// Groups tests

func (s *ServiceSuite) TestGroupsResolvesReferences() {
	s.addUser("alice", 1, 2)
	s.addGroup(1, "alice")
	s.addGroup(2, "bob")

	groups, err := s.service.Groups(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(groups, 2)
	s.Equal(model.GroupID(1), groups[0].ID)
	s.Equal(model.GroupID(2), groups[1].ID)
}

func (s *ServiceSuite) TestGroupsSkipsStaleReferences() {
	s.addUser("alice", 1, 99, 2)
	s.addGroup(1, "alice")
	s.addGroup(2, "alice")

	groups, err := s.service.Groups(s.ctx, "alice")
	s.Require().NoError(err)
	s.Len(groups, 2)
	s.Equal(model.GroupID(1), groups[0].ID)
	s.Equal(model.GroupID(2), groups[1].ID)
}

func (s *ServiceSuite) TestGroupsFailsIfUserMissing() {
	_, err := s.service.Groups(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}
