package redis

import (
	"fmt"

	"github.com/borga-dev/borga/internal/model"
)

// Key prefixes for all stored entities
const (
	keyPrefix = "borga:"

	usersIndexKey   = keyPrefix + "users"
	tokensIndexKey  = keyPrefix + "tokens"
	groupsIndexKey  = keyPrefix + "groups"
	groupCounterKey = keyPrefix + "group:next_id"
)

func userKey(username string) string {
	return keyPrefix + "user:" + username
}

func tokenKey(token string) string {
	return keyPrefix + "token:" + token
}

func groupKey(id model.GroupID) string {
	return fmt.Sprintf("%sgroup:%d", keyPrefix, id)
}
