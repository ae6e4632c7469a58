package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/borga-dev/borga/internal/dependencies/mocks"
	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage/memory"
	"github.com/borga-dev/borga/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, nil, testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	token, err := s.service.Register(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEmpty(token)
}

func (s *ServiceSuite) TestRegisterCreatesUserWithEmptyGroups() {
	_, _ = s.service.Register(s.ctx, "alice")

	user, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Empty(user.Groups)
	s.Equal(s.clock.Now(), user.CreatedAt)
}

func (s *ServiceSuite) TestRegisterBindsTokenToUsername() {
	token, _ := s.service.Register(s.ctx, "alice")

	username, err := s.service.ResolveToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("alice", username)
}

func (s *ServiceSuite) TestRegisterTokensAreUnique() {
	token1, _ := s.service.Register(s.ctx, "alice")
	token2, _ := s.service.Register(s.ctx, "bob")
	s.NotEqual(token1, token2)
}

func (s *ServiceSuite) TestRegisterFailsWithEmptyUsername() {
	_, err := s.service.Register(s.ctx, "")
	s.ErrorIs(err, model.ErrInvalidUsername)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameExists() {
	_, _ = s.service.Register(s.ctx, "alice")

	_, err := s.service.Register(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserExists)
}

// ResolveToken tests

func (s *ServiceSuite) TestResolveTokenUnknown() {
	_, err := s.service.ResolveToken(s.ctx, "no-such-token")
	s.ErrorIs(err, model.ErrUnknownToken)
}

func (s *ServiceSuite) TestResolveTokenEmpty() {
	_, err := s.service.ResolveToken(s.ctx, "")
	s.ErrorIs(err, model.ErrUnknownToken)
}

// DeregisterUser tests

func (s *ServiceSuite) TestDeregisterRemovesUser() {
	_, _ = s.service.Register(s.ctx, "alice")

	err := s.service.DeregisterUser(s.ctx, "alice")
	s.Require().NoError(err)

	exists, _ := s.storage.UserExists(s.ctx, "alice")
	s.False(exists)
}

func (s *ServiceSuite) TestDeregisterRevokesToken() {
	token, _ := s.service.Register(s.ctx, "alice")

	err := s.service.DeregisterUser(s.ctx, "alice")
	s.Require().NoError(err)

	_, err = s.service.ResolveToken(s.ctx, token)
	s.ErrorIs(err, model.ErrUnknownToken)
}

func (s *ServiceSuite) TestDeregisterFailsIfUserMissing() {
	err := s.service.DeregisterUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestDeregisterLeavesOtherUsersAlone() {
	_, _ = s.service.Register(s.ctx, "alice")
	bobToken, _ := s.service.Register(s.ctx, "bob")

	err := s.service.DeregisterUser(s.ctx, "alice")
	s.Require().NoError(err)

	username, err := s.service.ResolveToken(s.ctx, bobToken)
	s.Require().NoError(err)
	s.Equal("bob", username)
}
