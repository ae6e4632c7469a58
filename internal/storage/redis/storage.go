package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are stored as JSON values with set-based indexes for listing.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.Username), data, 0)
	pipe.SAdd(ctx, usersIndexKey, user.Username)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) error {
	deleted, err := s.client.Del(ctx, userKey(username)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrUserNotFound
	}
	return s.client.SRem(ctx, usersIndexKey, username).Err()
}

func (s *Storage) UserExists(ctx context.Context, username string) (bool, error) {
	exists, err := s.client.Exists(ctx, userKey(username)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	usernames, err := s.client.SMembers(ctx, usersIndexKey).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(usernames))
	for _, username := range usernames {
		user, err := s.GetUser(ctx, username)
		if errors.Is(err, model.ErrUserNotFound) {
			// Index entry outlived the value; skip it
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// Token operations

func (s *Storage) SaveToken(ctx context.Context, token, username string) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, tokenKey(token), username, 0)
	pipe.SAdd(ctx, tokensIndexKey, token)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ResolveToken(ctx context.Context, token string) (string, error) {
	username, err := s.client.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrUnknownToken
		}
		return "", err
	}
	return username, nil
}

func (s *Storage) DeleteTokensForUser(ctx context.Context, username string) error {
	tokens, err := s.client.SMembers(ctx, tokensIndexKey).Result()
	if err != nil {
		return err
	}

	for _, token := range tokens {
		owner, err := s.client.Get(ctx, tokenKey(token)).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return err
		}
		if owner != username {
			continue
		}

		pipe := s.client.Pipeline()
		pipe.Del(ctx, tokenKey(token))
		pipe.SRem(ctx, tokensIndexKey, token)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Group operations

func (s *Storage) NextGroupID(ctx context.Context) (model.GroupID, error) {
	id, err := s.client.Incr(ctx, groupCounterKey).Result()
	if err != nil {
		return 0, err
	}
	return model.GroupID(id), nil
}

func (s *Storage) SaveGroup(ctx context.Context, group *model.Group) error {
	data, err := json.Marshal(group)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, groupKey(group.ID), data, 0)
	pipe.SAdd(ctx, groupsIndexKey, strconv.FormatInt(int64(group.ID), 10))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGroup(ctx context.Context, id model.GroupID) (*model.Group, error) {
	data, err := s.client.Get(ctx, groupKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGroupNotFound
		}
		return nil, err
	}

	var group model.Group
	if err := json.Unmarshal(data, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Storage) DeleteGroup(ctx context.Context, id model.GroupID) error {
	deleted, err := s.client.Del(ctx, groupKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return model.ErrGroupNotFound
	}
	return s.client.SRem(ctx, groupsIndexKey, strconv.FormatInt(int64(id), 10)).Err()
}

func (s *Storage) GroupExists(ctx context.Context, id model.GroupID) (bool, error) {
	exists, err := s.client.Exists(ctx, groupKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (s *Storage) ListGroups(ctx context.Context) ([]*model.Group, error) {
	ids, err := s.client.SMembers(ctx, groupsIndexKey).Result()
	if err != nil {
		return nil, err
	}

	groups := make([]*model.Group, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		group, err := s.GetGroup(ctx, model.GroupID(id))
		if errors.Is(err, model.ErrGroupNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

// Reset operations

func (s *Storage) ClearUsers(ctx context.Context) error {
	usernames, err := s.client.SMembers(ctx, usersIndexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, username := range usernames {
		pipe.Del(ctx, userKey(username))
	}
	pipe.Del(ctx, usersIndexKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ClearTokens(ctx context.Context) error {
	tokens, err := s.client.SMembers(ctx, tokensIndexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, token := range tokens {
		pipe.Del(ctx, tokenKey(token))
	}
	pipe.Del(ctx, tokensIndexKey)
	_, err = pipe.Exec(ctx)
	return err
}

// ClearGroups wipes the group values and index but not the id counter, so
// ids stay unique across resets.
func (s *Storage) ClearGroups(ctx context.Context) error {
	ids, err := s.client.SMembers(ctx, groupsIndexKey).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		pipe.Del(ctx, groupKey(model.GroupID(id)))
	}
	pipe.Del(ctx, groupsIndexKey)
	_, err = pipe.Exec(ctx)
	return err
}
