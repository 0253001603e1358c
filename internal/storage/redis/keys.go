package redis

import (
	"fmt"

	"github.com/maddken/jokerparty/internal/model"
)

// Key prefix for all session data
const keyPrefix = "jokerparty"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// codeIndexKey returns the Redis key for the code -> game_id index
func codeIndexKey(code model.GameCode) string {
	return fmt.Sprintf("%s:idx:code:%s", keyPrefix, code)
}

// gamesIndexKey returns the Redis key for the SET of all live game ids
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// rosterKey returns the Redis key for the LIST of player ids in a game.
// A list rather than a set: join order is significant.
func rosterKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:roster:%s", keyPrefix, gameID)
}

// deviceIndexKey returns the Redis key for the (game, device) -> player_id index
func deviceIndexKey(gameID model.GameID, deviceID string) string {
	return fmt.Sprintf("%s:idx:device:%s:%s", keyPrefix, gameID, deviceID)
}

// messagesKey returns the Redis key for a game's append-only message LIST
func messagesKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:messages:%s", keyPrefix, gameID)
}
