package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage/memory"
	"github.com/borga-dev/borga/internal/testutil"
)

type ReconcilerSuite struct {
	suite.Suite
	storage    *memory.Storage
	reconciler *Reconciler
	ctx        context.Context
}

func TestReconcilerSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerSuite))
}

func (s *ReconcilerSuite) SetupTest() {
	s.storage = memory.New()
	s.reconciler = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ReconcilerSuite) TestRemovesReferenceFromEveryUser() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice", Groups: []model.GroupID{1, 2}})
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "bob", Groups: []model.GroupID{2, 3}})

	err := s.reconciler.Reconcile(s.ctx, 2)
	s.Require().NoError(err)

	alice, _ := s.storage.GetUser(s.ctx, "alice")
	s.Equal([]model.GroupID{1}, alice.Groups)

	bob, _ := s.storage.GetUser(s.ctx, "bob")
	s.Equal([]model.GroupID{3}, bob.Groups)
}

func (s *ReconcilerSuite) TestIgnoresUsersWithoutReference() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice", Groups: []model.GroupID{1}})

	err := s.reconciler.Reconcile(s.ctx, 2)
	s.Require().NoError(err)

	alice, _ := s.storage.GetUser(s.ctx, "alice")
	s.Equal([]model.GroupID{1}, alice.Groups)
}

func (s *ReconcilerSuite) TestNoUsersIsNotAnError() {
	err := s.reconciler.Reconcile(s.ctx, 1)
	s.NoError(err)
}

func (s *ReconcilerSuite) TestPreservesOrderOfRemainingReferences() {
	_ = s.storage.SaveUser(s.ctx, &model.User{Username: "alice", Groups: []model.GroupID{3, 1, 2}})

	err := s.reconciler.Reconcile(s.ctx, 1)
	s.Require().NoError(err)

	alice, _ := s.storage.GetUser(s.ctx, "alice")
	s.Equal([]model.GroupID{3, 2}, alice.Groups)
}
