package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games       map[model.GameID]*model.Game
	codeIndex   map[model.GameCode]model.GameID
	players     map[model.PlayerID]*model.Player
	rosterOrder map[model.GameID][]model.PlayerID
	messages    map[model.GameID][]*model.Message
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:       make(map[model.GameID]*model.Game),
		codeIndex:   make(map[model.GameCode]model.GameID),
		players:     make(map[model.PlayerID]*model.Player),
		rosterOrder: make(map[model.GameID][]model.PlayerID),
		messages:    make(map[model.GameID][]*model.Message),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
	s.codeIndex[game.Code] = game.ID
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game, nil
}

func (s *Storage) GameCodeExists(ctx context.Context, code model.GameCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codeIndex[code]
	return ok, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	slices.SortFunc(games, func(a, b *model.Game) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare([]byte(a.Code), []byte(b.Code))
	})
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil
	}
	delete(s.codeIndex, game.Code)
	delete(s.games, id)
	for _, pid := range s.rosterOrder[id] {
		delete(s.players, pid)
	}
	delete(s.rosterOrder, id)
	delete(s.messages, id)
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[player.ID]; !ok {
		s.rosterOrder[player.GameID] = append(s.rosterOrder[player.GameID], player.ID)
	}
	s.players[player.ID] = player
	return nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, player := range players {
		if _, ok := s.players[player.ID]; !ok {
			s.rosterOrder[player.GameID] = append(s.rosterOrder[player.GameID], player.ID)
		}
		s.players[player.ID] = player
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order := s.rosterOrder[gameID]
	players := make([]*model.Player, 0, len(order))
	for _, pid := range order {
		if p, ok := s.players[pid]; ok {
			players = append(players, p)
		}
	}
	return players, nil
}

func (s *Storage) GetPlayerByDevice(ctx context.Context, gameID model.GameID, deviceID string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pid := range s.rosterOrder[gameID] {
		if p, ok := s.players[pid]; ok && p.DeviceID == deviceID {
			return p, nil
		}
	}
	return nil, model.ErrPlayerNotFound
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil
	}
	delete(s.players, id)
	order := s.rosterOrder[player.GameID]
	if i := slices.Index(order, id); i >= 0 {
		s.rosterOrder[player.GameID] = slices.Delete(order, i, i+1)
	}
	return nil
}

// Message operations

func (s *Storage) AppendMessage(ctx context.Context, msg *model.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.GameID] = append(s.messages[msg.GameID], msg)
	return nil
}

func (s *Storage) GetMessagesForGame(ctx context.Context, gameID model.GameID) ([]*model.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[gameID]
	result := make([]*model.Message, len(msgs))
	copy(result, msgs)
	return result, nil
}
