package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/maddken/jokerparty/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) game(id, code string) *model.Game {
	return &model.Game{
		ID:          model.GameID(id),
		Code:        model.GameCode(code),
		JokerTarget: 1,
		CreatedAt:   time.Now(),
	}
}

func (s *StorageSuite) player(id, gameID, deviceID, name string) *model.Player {
	return &model.Player{
		ID:       model.PlayerID(id),
		GameID:   model.GameID(gameID),
		DeviceID: deviceID,
		Name:     name,
		Role:     model.RoleHearts,
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := s.game("game-1", "ABC123")

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.Code, retrieved.Code)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameByCode() {
	_ = s.storage.SaveGame(s.ctx, s.game("game-1", "ABC123"))

	retrieved, err := s.storage.GetGameByCode(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), retrieved.ID)

	_, err = s.storage.GetGameByCode(s.ctx, "ZZZZZZ")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGameCodeExists() {
	_ = s.storage.SaveGame(s.ctx, s.game("game-1", "ABC123"))

	exists, err := s.storage.GameCodeExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.GameCodeExists(s.ctx, "XYZ789")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestListGamesOrderedByCreation() {
	g1 := s.game("game-1", "AAAAAA")
	g1.CreatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g2 := s.game("game-2", "BBBBBB")
	g2.CreatedAt = time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	_ = s.storage.SaveGame(s.ctx, g1)
	_ = s.storage.SaveGame(s.ctx, g2)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 2)
	s.Equal(model.GameID("game-2"), games[0].ID)
	s.Equal(model.GameID("game-1"), games[1].ID)
}

func (s *StorageSuite) TestDeleteGameRemovesRosterAndMessages() {
	_ = s.storage.SaveGame(s.ctx, s.game("game-1", "ABC123"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p-1", "game-1", "dev-1", "Ann"))
	_ = s.storage.AppendMessage(s.ctx, &model.Message{ID: "m-1", GameID: "game-1", PlayerID: "p-1", Content: "hi"})

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetPlayer(s.ctx, "p-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	exists, _ := s.storage.GameCodeExists(s.ctx, "ABC123")
	s.False(exists)

	msgs, err := s.storage.GetMessagesForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(msgs)
}

// Player tests

func (s *StorageSuite) TestPlayersReturnedInJoinOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p-1", "game-1", "dev-1", "Ann"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p-2", "game-1", "dev-2", "Bob"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p-3", "game-1", "dev-3", "Cid"))

	players, err := s.storage.GetPlayersForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p-1"), players[0].ID)
	s.Equal(model.PlayerID("p-2"), players[1].ID)
	s.Equal(model.PlayerID("p-3"), players[2].ID)
}

func (s *StorageSuite) TestSavePlayerTwiceDoesNotDuplicate() {
	p := s.player("p-1", "game-1", "dev-1", "Ann")
	_ = s.storage.SavePlayer(s.ctx, p)
	p.Role = model.RoleJoker
	_ = s.storage.SavePlayer(s.ctx, p)

	players, err := s.storage.GetPlayersForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.RoleJoker, players[0].Role)
}

func (s *StorageSuite) TestSavePlayersBatchKeepsJoinOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p-1", "game-1", "dev-1", "Ann"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p-2", "game-1", "dev-2", "Bob"))

	// Re-save both with new roles in one batch
	ann := s.player("p-1", "game-1", "dev-1", "Ann")
	ann.Role = model.RoleJoker
	bob := s.player("p-2", "game-1", "dev-2", "Bob")
	bob.Role = model.RoleDiamonds

	err := s.storage.SavePlayers(s.ctx, []*model.Player{ann, bob})
	s.Require().NoError(err)

	players, err := s.storage.GetPlayersForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p-1"), players[0].ID)
	s.Equal(model.RoleJoker, players[0].Role)
	s.Equal(model.RoleDiamonds, players[1].Role)
}

func (s *StorageSuite) TestGetPlayerByDevice() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p-1", "game-1", "dev-1", "Ann"))

	p, err := s.storage.GetPlayerByDevice(s.ctx, "game-1", "dev-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p-1"), p.ID)

	_, err = s.storage.GetPlayerByDevice(s.ctx, "game-1", "dev-2")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// Same device in a different game is a different player
	_, err = s.storage.GetPlayerByDevice(s.ctx, "game-2", "dev-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayerKeepsRemainingOrder() {
	_ = s.storage.SavePlayer(s.ctx, s.player("p-1", "game-1", "dev-1", "Ann"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p-2", "game-1", "dev-2", "Bob"))
	_ = s.storage.SavePlayer(s.ctx, s.player("p-3", "game-1", "dev-3", "Cid"))

	err := s.storage.DeletePlayer(s.ctx, "p-2")
	s.Require().NoError(err)

	players, _ := s.storage.GetPlayersForGame(s.ctx, "game-1")
	s.Require().Len(players, 2)
	s.Equal(model.PlayerID("p-1"), players[0].ID)
	s.Equal(model.PlayerID("p-3"), players[1].ID)
}

func (s *StorageSuite) TestDeletePlayerMissingIsNoop() {
	err := s.storage.DeletePlayer(s.ctx, "nonexistent")
	s.NoError(err)
}

// Message tests

func (s *StorageSuite) TestMessagesAppendInOrder() {
	for _, id := range []string{"m-1", "m-2", "m-3"} {
		_ = s.storage.AppendMessage(s.ctx, &model.Message{
			ID:       model.MessageID(id),
			GameID:   "game-1",
			PlayerID: "p-1",
			Content:  id,
		})
	}

	msgs, err := s.storage.GetMessagesForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(msgs, 3)
	s.Equal(model.MessageID("m-1"), msgs[0].ID)
	s.Equal(model.MessageID("m-3"), msgs[2].ID)
}
