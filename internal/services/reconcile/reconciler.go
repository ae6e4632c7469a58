package reconcile

import (
	"context"
	"log/slog"

	"github.com/borga-dev/borga/internal/model"
	"github.com/borga-dev/borga/internal/storage"
)

// Reconciler repairs dangling group references in user records after a
// group is deleted. This is the write-side half of referential-integrity
// maintenance; the user registry's lazy read path is the other half.
type Reconciler struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new reconciler
func New(storage storage.Storage, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		storage: storage,
		logger:  logger,
	}
}

// Reconcile removes the deleted group id from every user's reference list.
// Users that never referenced the group are not an error for this sweep.
func (r *Reconciler) Reconcile(ctx context.Context, deletedGroupID model.GroupID) error {
	users, err := r.storage.ListUsers(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		if !user.RemoveGroup(deletedGroupID) {
			continue
		}
		if err := r.storage.SaveUser(ctx, user); err != nil {
			return err
		}
		r.logger.Debug("removed stale group reference",
			slog.String("username", user.Username),
			slog.Int64("group_id", int64(deletedGroupID)),
		)
	}
	return nil
}
