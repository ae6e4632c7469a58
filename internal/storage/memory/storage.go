package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// A single RWMutex guards all collections: the referential invariants span
// users and groups, so no operation may observe them half-updated.
type Storage struct {
	mu sync.RWMutex

	users       map[string]*model.User
	tokens      map[string]string // token -> username
	groups      map[model.GroupID]*model.Group
	nextGroupID model.GroupID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[string]*model.User),
		tokens:      make(map[string]string),
		groups:      make(map[model.GroupID]*model.Group),
		nextGroupID: 1,
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// copyUser returns an independent copy so callers can mutate freely
// and persist via SaveUser, matching the redis implementation's semantics.
func copyUser(u *model.User) *model.User {
	c := *u
	c.Groups = make([]model.GroupID, len(u.Groups))
	copy(c.Groups, u.Groups)
	return &c
}

func copyGroup(g *model.Group) *model.Group {
	c := *g
	c.Games = make([]model.Game, len(g.Games))
	copy(c.Games, g.Games)
	return &c
}

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Username] = copyUser(user)
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return model.ErrUserNotFound
	}
	delete(s.users, username)
	return nil
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Token operations

func (s *Storage) SaveToken(ctx context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = username
	return nil
}

func (s *Storage) ResolveToken(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.tokens[token]
	if !ok {
		return "", model.ErrUnknownToken
	}
	return username, nil
}

func (s *Storage) DeleteTokensForUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, owner := range s.tokens {
		if owner == username {
			delete(s.tokens, token)
		}
	}
	return nil
}

// Group operations

func (s *Storage) NextGroupID(ctx context.Context) (model.GroupID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextGroupID
	s.nextGroupID++
	return id, nil
}

func (s *Storage) SaveGroup(ctx context.Context, group *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[group.ID] = copyGroup(group)
	return nil
}

func (s *Storage) GetGroup(ctx context.Context, id model.GroupID) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok {
		return nil, model.ErrGroupNotFound
	}
	return copyGroup(group), nil
}

func (s *Storage) DeleteGroup(ctx context.Context, id model.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return model.ErrGroupNotFound
	}
	delete(s.groups, id)
	return nil
}

func (s *Storage) GroupExists(ctx context.Context, id model.GroupID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.groups[id]
	return ok, nil
}

func (s *Storage) ListGroups(ctx context.Context) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make([]*model.Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, copyGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// Reset operations

func (s *Storage) ClearUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]*model.User)
	return nil
}

func (s *Storage) ClearTokens(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
	return nil
}

// ClearGroups wipes the group collection. The id counter is left alone so
// ids allocated after a clear never collide with ids handed out before it.
func (s *Storage) ClearGroups(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = make(map[model.GroupID]*model.Group)
	return nil
}
