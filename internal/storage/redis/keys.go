package redis

import (
	"fmt"

	"github.com/pixelpets/arena/internal/model"
)

// Key prefix for all arena data
const keyPrefix = "arena"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the code -> game_id index
func codeIndexKey(code model.GameCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// waitingEntryKey returns the Redis key for a waiting queue entry
func waitingEntryKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:waiting:%s", keyPrefix, id)
}

// waitingQueueKey returns the Redis key for the FIFO queue LIST
func waitingQueueKey() string {
	return fmt.Sprintf("%s:queue", keyPrefix)
}
