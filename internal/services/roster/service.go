package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/maddken/jokerparty/internal/dependencies/clock"
	"github.com/maddken/jokerparty/internal/dependencies/keylock"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/services/roles"
	"github.com/maddken/jokerparty/internal/storage"
)

// Config controls roster limits
type Config struct {
	MaxPlayers int
	MinNameLen int
	MaxNameLen int
}

func DefaultConfig() Config {
	return Config{
		MaxPlayers: 12,
		MinNameLen: 2,
		MaxNameLen: 20,
	}
}

// Service manages game rosters. Joins and removals for the same game are
// serialized through the shared per-game lock.
type Service struct {
	cfg    Config
	store  storage.Storage
	clock  clock.Clock
	locks  *keylock.KeyLock
	engine *roles.Engine
	logger *slog.Logger
}

func NewService(cfg Config, store storage.Storage, clk clock.Clock, locks *keylock.KeyLock, engine *roles.Engine, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		store:  store,
		clock:  clk,
		locks:  locks,
		engine: engine,
		logger: logger,
	}
}

// Join adds a player to a game's roster, dealing them a provisional role from
// the seed deck. Joining is idempotent per device: a device already in the
// roster gets its existing player back regardless of the submitted name.
func (s *Service) Join(ctx context.Context, gameID model.GameID, deviceID, name string) (*model.Player, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < s.cfg.MinNameLen || n > s.cfg.MaxNameLen {
		return nil, model.ErrInvalidName
	}

	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(string(gameID))
	defer unlock()

	existing, err := s.store.GetPlayerByDevice(ctx, gameID, deviceID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, fmt.Errorf("looking up device: %w", err)
	}

	players, err := s.store.GetPlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(players) >= s.cfg.MaxPlayers {
		return nil, model.ErrGameFull
	}

	held := make([]model.Role, 0, len(players))
	for _, p := range players {
		held = append(held, p.Role)
	}

	player := &model.Player{
		ID:       model.PlayerID(uuid.NewString()),
		GameID:   gameID,
		DeviceID: deviceID,
		Name:     name,
		Role:     s.engine.SeedRole(held),
		JoinedAt: s.clock.Now(),
	}
	if err := s.store.SavePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("saving player: %w", err)
	}

	s.logger.InfoContext(ctx, "player joined",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(player.ID)))
	return player, nil
}

// List returns the roster in join order; the first player is the host
func (s *Service) List(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.store.GetPlayersForGame(ctx, gameID)
}

// Remove takes a player out of the roster. Removing a player who is already
// gone is not an error.
func (s *Service) Remove(ctx context.Context, gameID model.GameID, playerID model.PlayerID) error {
	unlock := s.locks.Lock(string(gameID))
	defer unlock()

	player, err := s.store.GetPlayer(ctx, playerID)
	if errors.Is(err, model.ErrPlayerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if player.GameID != gameID {
		return model.ErrNotInGame
	}

	if err := s.store.DeletePlayer(ctx, playerID); err != nil {
		return fmt.Errorf("deleting player: %w", err)
	}

	s.logger.InfoContext(ctx, "player removed",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)))
	return nil
}

// FindByDevice returns the player a device controls in the given game
func (s *Service) FindByDevice(ctx context.Context, gameID model.GameID, deviceID string) (*model.Player, error) {
	return s.store.GetPlayerByDevice(ctx, gameID, deviceID)
}
