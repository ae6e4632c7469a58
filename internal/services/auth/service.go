package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/borga-dev/borga/internal/dependencies/clock"
	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage"
)

// OwnedGroupDeleter removes every group owned by a user. It is implemented
// by the group service; the indirection avoids an import cycle.
type OwnedGroupDeleter interface {
	DeleteOwnedBy(ctx context.Context, owner string) error
}

// Service is the identity and token registry: it creates users, binds
// opaque tokens to usernames and resolves tokens back to identities.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	groups  OwnedGroupDeleter
	logger  *slog.Logger
}

// New creates a new auth service. groups may be nil, in which case
// deregistration leaves owned groups in place.
func New(storage storage.Storage, clk clock.Clock, groups OwnedGroupDeleter, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clk,
		groups:  groups,
		logger:  logger,
	}
}

// Register creates a user with an empty group list and binds a fresh opaque
// token to it. The token is the only credential the user will ever hold.
func (s *Service) Register(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", model.ErrInvalidUsername
	}

	exists, err := s.storage.UserExists(ctx, username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", model.ErrUserExists
	}

	user := &model.User{
		Username:  username,
		Groups:    []model.GroupID{},
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.storage.SaveToken(ctx, token, username); err != nil {
		return "", err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return token, nil
}

// ResolveToken returns the username a token is bound to.
// Returns model.ErrUnknownToken for tokens this registry never issued or
// has since revoked; the transport layer maps that to an auth failure.
func (s *Service) ResolveToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", model.ErrUnknownToken
	}
	return s.storage.ResolveToken(ctx, token)
}

// DeregisterUser removes a user, revokes every token bound to it, and
// cascade-deletes the groups the user owns so no group is left with a
// nonexistent owner.
func (s *Service) DeregisterUser(ctx context.Context, username string) error {
	exists, err := s.storage.UserExists(ctx, username)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrUserNotFound
	}

	if s.groups != nil {
		if err := s.groups.DeleteOwnedBy(ctx, username); err != nil {
			return err
		}
	}

	if err := s.storage.DeleteTokensForUser(ctx, username); err != nil {
		return err
	}

	if err := s.storage.DeleteUser(ctx, username); err != nil {
		return err
	}

	s.logger.Info("user deregistered", slog.String("username", username))
	return nil
}
