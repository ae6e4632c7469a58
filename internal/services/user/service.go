package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage"
)

// Service is the user registry. It tracks which groups each user references;
// the references are foreign ids, not ownership, and may go stale between
// reconciliation sweeps.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new user registry service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Exists reports whether the username is registered
func (s *Service) Exists(ctx context.Context, username string) (bool, error) {
	return s.storage.UserExists(ctx, username)
}

// List returns every registered username
func (s *Service) List(ctx context.Context) ([]string, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(users))
	for _, u := range users {
		usernames = append(usernames, u.Username)
	}
	return usernames, nil
}

// Get returns the user record
func (s *Service) Get(ctx context.Context, username string) (*model.User, error) {
	return s.storage.GetUser(ctx, username)
}

// AttachGroup appends a group reference to the user's list. The group must
// exist and must not already be referenced.
func (s *Service) AttachGroup(ctx context.Context, username string, groupID model.GroupID) error {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return err
	}

	exists, err := s.storage.GroupExists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrGroupNotFound
	}

	if user.HasGroup(groupID) {
		return model.ErrGroupAlreadyLinked
	}

	user.Groups = append(user.Groups, groupID)
	return s.storage.SaveUser(ctx, user)
}

// DetachGroup removes a group reference from the user's list
func (s *Service) DetachGroup(ctx context.Context, username string, groupID model.GroupID) error {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return err
	}

	if !user.RemoveGroup(groupID) {
		return model.ErrGroupNotLinked
	}

	return s.storage.SaveUser(ctx, user)
}

// Groups resolves the user's group references. References that no longer
// resolve are skipped: this is the read-side half of referential-integrity
// maintenance, tolerating staleness between reconciliation sweeps.
func (s *Service) Groups(ctx context.Context, username string) ([]*model.Group, error) {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	groups := make([]*model.Group, 0, len(user.Groups))
	for _, id := range user.Groups {
		group, err := s.storage.GetGroup(ctx, id)
		if errors.Is(err, model.ErrGroupNotFound) {
			s.logger.Debug("skipping stale group reference",
				slog.String("username", username),
				slog.Int64("group_id", int64(id)),
			)
			continue
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
