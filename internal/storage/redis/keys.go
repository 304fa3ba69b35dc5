package redis

import (
	"fmt"

	"github.com/mcoot/findingfriends/internal/model"
)

// Key prefix for all scorekeeping data
const keyPrefix = "ffscore"

// sessionKey returns the Redis key for a Session
func sessionKey(date model.SessionDate) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, date)
}

// sessionIndexKey returns the Redis key for the SET of session keys
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
