package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username already taken")
	ErrInvalidUsername = errors.New("username must not be empty")

	// Token errors
	ErrUnknownToken = errors.New("unknown token")

	// Group errors
	ErrGroupNotFound           = errors.New("group not found")
	ErrInvalidGroupName        = errors.New("group name must not be empty")
	ErrInvalidGroupDescription = errors.New("group description must not be empty")
	ErrNotGroupOwner           = errors.New("only the group owner can do this")
	ErrGroupAlreadyLinked      = errors.New("group already associated with user")
	ErrGroupNotLinked          = errors.New("group not associated with user")

	// Game errors
	ErrGameAlreadyInGroup = errors.New("game already in group")
	ErrGameNotInGroup     = errors.New("game not in group")

	// ErrInternalInconsistency marks a violated post-condition. It indicates
	// a bug in this service, never a caller mistake.
	ErrInternalInconsistency = errors.New("internal store inconsistency")
)
