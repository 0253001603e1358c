package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/maddken/jokerparty/internal/dependencies/clock"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/storage"
)

// Service maintains the append-only message log of each game
type Service struct {
	store  storage.Storage
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Post appends a message to a game's log. Sender and recipient (when set)
// must both be in the game's roster. A message with a recipient is private.
func (s *Service) Post(ctx context.Context, gameID model.GameID, from model.PlayerID, content string, to *model.PlayerID) (*model.Message, error) {
	sender, err := s.store.GetPlayer(ctx, from)
	if err != nil {
		return nil, err
	}
	if sender.GameID != gameID {
		return nil, model.ErrNotInGame
	}

	if to != nil {
		recipient, err := s.store.GetPlayer(ctx, *to)
		if err != nil {
			return nil, err
		}
		if recipient.GameID != gameID {
			return nil, model.ErrNotInGame
		}
	}

	msg := &model.Message{
		ID:         model.MessageID(uuid.NewString()),
		GameID:     gameID,
		PlayerID:   from,
		ToPlayerID: to,
		Content:    content,
		IsPrivate:  to != nil,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}

	s.logger.DebugContext(ctx, "message posted",
		slog.String("game_id", string(gameID)),
		slog.Bool("private", msg.IsPrivate))
	return msg, nil
}

// ListFor returns the messages a viewer may read, in append order: every
// public message plus the private messages the viewer sent or received.
func (s *Service) ListFor(ctx context.Context, gameID model.GameID, viewer model.PlayerID) ([]*model.Message, error) {
	if _, err := s.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}

	all, err := s.store.GetMessagesForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	visible := make([]*model.Message, 0, len(all))
	for _, m := range all {
		if m.VisibleTo(viewer) {
			visible = append(visible, m)
		}
	}
	return visible, nil
}
