package storage

import (
	"context"

	"github.com/maddken/jokerparty/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error)
	GameCodeExists(ctx context.Context, code model.GameCode) (bool, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Player operations. GetPlayersForGame returns players in join order; the
	// first player is treated as the game's host.
	// SavePlayers persists a batch in one write, so a role redeal lands for
	// every player or for none of them.
	SavePlayer(ctx context.Context, player *model.Player) error
	SavePlayers(ctx context.Context, players []*model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error)
	GetPlayerByDevice(ctx context.Context, gameID model.GameID, deviceID string) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Message operations. The message log is append-only.
	AppendMessage(ctx context.Context, msg *model.Message) error
	GetMessagesForGame(ctx context.Context, gameID model.GameID) ([]*model.Message, error)
}
