package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "singhit"

// stateKey returns the Redis key for the named snapshot
func stateKey(name string) string {
	return fmt.Sprintf("%s:state:%s", keyPrefix, name)
}
