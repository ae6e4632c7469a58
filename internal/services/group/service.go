package group

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/borga-dev/borga/internal/dependencies/clock"
	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/services/reconcile"
	"github.com/borga-dev/borga/internal/services/user"
	"github.com/borga-dev/borga/internal/storage"
)

// Service is the group and game store. It owns group entities and their
// embedded games, enforces ownership on every mutation, and keeps user
// reference lists consistent on creation and deletion.
type Service struct {
	storage    storage.Storage
	users      *user.Service
	reconciler *reconcile.Reconciler
	clock      clock.Clock
	logger     *slog.Logger

	// mu serializes every mutation of this service: the composite ones
	// (create = insert + attach, delete = remove + reconcile) and the
	// get-modify-save ones (rename, redescribe, add/remove game), so
	// concurrent writers never lose updates to the same group.
	mu sync.Mutex
}

// New creates a new group service
func New(storage storage.Storage, users *user.Service, reconciler *reconcile.Reconciler, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:    storage,
		users:      users,
		reconciler: reconciler,
		clock:      clk,
		logger:     logger,
	}
}

// Exists reports whether the group exists
func (s *Service) Exists(ctx context.Context, id model.GroupID) (bool, error) {
	return s.storage.GroupExists(ctx, id)
}

// Get returns the full group entity
func (s *Service) Get(ctx context.Context, id model.GroupID) (*model.Group, error) {
	return s.storage.GetGroup(ctx, id)
}

// Details returns the group's summary projection: name, description and the
// display names of its games.
func (s *Service) Details(ctx context.Context, id model.GroupID) (model.GroupDetails, error) {
	group, err := s.storage.GetGroup(ctx, id)
	if err != nil {
		return model.GroupDetails{}, err
	}
	return group.Details(), nil
}

// List returns the summary projection of every stored group
func (s *Service) List(ctx context.Context) ([]model.GroupDetails, error) {
	groups, err := s.storage.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]model.GroupDetails, 0, len(groups))
	for _, g := range groups {
		details = append(details, g.Details())
	}
	return details, nil
}

// Create stores a new group owned by the given user and appends its id to
// the owner's reference list. Both writes happen under one critical section
// so no caller of this service observes the group without its owner-side
// reference.
func (s *Service) Create(ctx context.Context, owner, name, description string) (model.GroupID, error) {
	exists, err := s.users.Exists(ctx, owner)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, model.ErrUserNotFound
	}
	if name == "" {
		return 0, model.ErrInvalidGroupName
	}
	if description == "" {
		return 0, model.ErrInvalidGroupDescription
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.storage.NextGroupID(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	group := &model.Group{
		ID:          id,
		Owner:       owner,
		Name:        name,
		Description: description,
		Games:       []model.Game{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveGroup(ctx, group); err != nil {
		return 0, err
	}

	if err := s.users.AttachGroup(ctx, owner, id); err != nil {
		return 0, err
	}

	s.logger.Info("group created",
		slog.Int64("group_id", int64(id)),
		slog.String("owner", owner),
	)
	return id, nil
}

// Rename changes the group's name. Only the owner may rename; a missing
// group reports not-found before any ownership check.
func (s *Service) Rename(ctx context.Context, requester string, id model.GroupID, newName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getOwned(ctx, requester, id)
	if err != nil {
		return "", err
	}
	if newName == "" {
		return "", model.ErrInvalidGroupName
	}

	group.Name = newName
	group.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveGroup(ctx, group); err != nil {
		return "", err
	}
	return newName, nil
}

// Redescribe changes the group's description, under the same rules as Rename
func (s *Service) Redescribe(ctx context.Context, requester string, id model.GroupID, newDescription string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getOwned(ctx, requester, id)
	if err != nil {
		return "", err
	}
	if newDescription == "" {
		return "", model.ErrInvalidGroupDescription
	}

	group.Description = newDescription
	group.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveGroup(ctx, group); err != nil {
		return "", err
	}
	return newDescription, nil
}

// Delete removes the group and all its embedded games, then strips the id
// from every user's reference list. After Delete returns, no user group
// listing contains the deleted id.
func (s *Service) Delete(ctx context.Context, requester string, id model.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteLocked(ctx, requester, id)
}

func (s *Service) deleteLocked(ctx context.Context, requester string, id model.GroupID) error {
	group, err := s.storage.GetGroup(ctx, id)
	if err != nil {
		return err
	}
	if group.Owner != requester {
		return model.ErrNotGroupOwner
	}

	if err := s.storage.DeleteGroup(ctx, id); err != nil {
		// The existence check above succeeded, so a not-found here means
		// the store contradicted itself.
		if errors.Is(err, model.ErrGroupNotFound) {
			return model.ErrInternalInconsistency
		}
		return err
	}

	if err := s.reconciler.Reconcile(ctx, id); err != nil {
		return err
	}

	s.logger.Info("group deleted",
		slog.Int64("group_id", int64(id)),
		slog.String("owner", requester),
	)
	return nil
}

// DeleteOwnedBy removes every group the user owns, reconciling references
// after each deletion. Used when an account is deregistered.
func (s *Service) DeleteOwnedBy(ctx context.Context, owner string) error {
	groups, err := s.storage.ListGroups(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range groups {
		if g.Owner != owner {
			continue
		}
		if err := s.deleteLocked(ctx, owner, g.ID); err != nil {
			return err
		}
	}
	return nil
}

// AddGame embeds a game into the group. Game ids are unique within a group;
// the same catalog game may live in any number of other groups.
func (s *Service) AddGame(ctx context.Context, requester string, id model.GroupID, game model.Game) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getOwned(ctx, requester, id)
	if err != nil {
		return "", err
	}

	if group.HasGame(game.ID) {
		return "", model.ErrGameAlreadyInGroup
	}

	group.Games = append(group.Games, game)
	group.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveGroup(ctx, group); err != nil {
		return "", err
	}

	s.logger.Info("game added to group",
		slog.Int64("group_id", int64(id)),
		slog.String("game_id", game.ID),
	)
	return game.ID, nil
}

// RemoveGame removes an embedded game from the group
func (s *Service) RemoveGame(ctx context.Context, requester string, id model.GroupID, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.getOwned(ctx, requester, id)
	if err != nil {
		return err
	}

	if !group.RemoveGame(gameID) {
		return model.ErrGameNotInGroup
	}

	group.UpdatedAt = s.clock.Now()
	return s.storage.SaveGroup(ctx, group)
}

// GameNames returns the display names of the group's games in insertion order
func (s *Service) GameNames(ctx context.Context, id model.GroupID) ([]string, error) {
	group, err := s.storage.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	return group.GameNames(), nil
}

// getOwned fetches the group and enforces the ownership rule. Existence is
// checked first: "authorized on a nonexistent resource" must be impossible
// to observe.
func (s *Service) getOwned(ctx context.Context, requester string, id model.GroupID) (*model.Group, error) {
	group, err := s.storage.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.Owner != requester {
		return nil, model.ErrNotGroupOwner
	}
	return group, nil
}
