package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/maddken/jokerparty/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: Complete session flow from creation through rounds to stop
func (s *IntegrationSuite) TestCompleteSessionFlow() {
	s.app.MockRandom.QueueString("GAME01")

	// Step 1: Create a game
	game, err := s.app.GameController.CreateGame(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(model.GameCode("GAME01"), game.Code)
	s.False(game.Started)

	// Step 2: Ann and Bob join and draw seed roles
	ann, err := s.app.RosterService.Join(s.ctx, game.ID, "dev-ann", "Ann")
	s.Require().NoError(err)
	bob, err := s.app.RosterService.Join(s.ctx, game.ID, "dev-bob", "Bob")
	s.Require().NoError(err)
	s.NotEqual(ann.ID, bob.ID)

	// Joining again from Ann's device changes nothing
	annAgain, err := s.app.RosterService.Join(s.ctx, game.ID, "dev-ann", "Ann")
	s.Require().NoError(err)
	s.Equal(ann.ID, annAgain.ID)

	// Step 3: Start deals the authoritative roles. With all zero draws the
	// deck builds as [joker, hearts] and the shuffle seats the joker last.
	err = s.app.GameController.Start(s.ctx, game.Code, nil)
	s.Require().NoError(err)

	players, err := s.app.RosterService.List(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Require().Len(players, 2)

	s.Equal(model.RoleHearts, players[0].Role)
	s.Nil(players[0].DisguisedAs)
	s.Equal(model.RoleJoker, players[1].Role)
	s.Require().NotNil(players[1].DisguisedAs)
	s.Equal(model.RoleHearts, *players[1].DisguisedAs)

	// Step 4: Next round keeps the joker set and redeals the rest
	err = s.app.GameController.NextRound(s.ctx, game.Code)
	s.Require().NoError(err)

	players, err = s.app.RosterService.List(s.ctx, game.ID)
	s.Require().NoError(err)
	s.False(players[0].IsJoker())
	s.True(players[1].IsJoker())
	s.NotNil(players[1].DisguisedAs)

	// Step 5: Messages flow between the players
	to := players[1].ID
	_, err = s.app.ChatService.Post(s.ctx, game.ID, players[0].ID, "suspicious of you", &to)
	s.Require().NoError(err)

	msgs, err := s.app.ChatService.ListFor(s.ctx, game.ID, players[1].ID)
	s.Require().NoError(err)
	s.Len(msgs, 1)

	// Step 6: Stop returns the game to the lobby with roles intact
	err = s.app.GameController.Stop(s.ctx, game.Code)
	s.Require().NoError(err)

	stopped, err := s.app.GameController.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.False(stopped.Started)

	players, _ = s.app.RosterService.List(s.ctx, game.ID)
	s.Equal(model.RoleJoker, players[1].Role)
}

func (s *IntegrationSuite) TestRedisConfigRequired() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	_, err = New(Config{StorageType: "bogus"})
	s.Error(err)
}
