package redis

import (
	"fmt"

	"github.com/mcoot/battleship/internal/model"
)

// Key prefix for all battleship data
const keyPrefix = "battleship"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// accountKey returns the Redis key for an Account
func accountKey(userID model.UserID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, userID)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}
