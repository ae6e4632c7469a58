package storage

import (
	"context"

	"github.com/borga-dev/borga/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, username string) error
	UserExists(ctx context.Context, username string) (bool, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Token operations
	SaveToken(ctx context.Context, token, username string) error
	ResolveToken(ctx context.Context, token string) (string, error)
	DeleteTokensForUser(ctx context.Context, username string) error

	// Group operations
	NextGroupID(ctx context.Context) (model.GroupID, error)
	SaveGroup(ctx context.Context, group *model.Group) error
	GetGroup(ctx context.Context, id model.GroupID) (*model.Group, error)
	DeleteGroup(ctx context.Context, id model.GroupID) error
	GroupExists(ctx context.Context, id model.GroupID) (bool, error)
	ListGroups(ctx context.Context) ([]*model.Group, error)

	// Reset operations for test harnesses. Each wipes exactly one
	// collection; the group id counter is not reset so ids stay unique
	// for the life of the store.
	ClearUsers(ctx context.Context) error
	ClearTokens(ctx context.Context) error
	ClearGroups(ctx context.Context) error
}
