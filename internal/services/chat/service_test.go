package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/maddken/jokerparty/internal/dependencies/mocks"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/storage/memory"
	"github.com/maddken/jokerparty/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = NewService(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "game-1", Code: "ABC123"}))
	for _, p := range []struct{ id, name string }{
		{"p-ann", "Ann"},
		{"p-bob", "Bob"},
		{"p-cid", "Cid"},
	} {
		s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
			ID:     model.PlayerID(p.id),
			GameID: "game-1",
			Name:   p.name,
			Role:   model.RoleHearts,
		}))
	}
}

func (s *ServiceSuite) TestPostPublic() {
	msg, err := s.service.Post(s.ctx, "game-1", "p-ann", "hello all", nil)
	s.Require().NoError(err)
	s.NotEmpty(msg.ID)
	s.False(msg.IsPrivate)
	s.Nil(msg.ToPlayerID)
	s.Equal(s.clock.CurrentTime, msg.CreatedAt)
}

func (s *ServiceSuite) TestPostPrivate() {
	to := model.PlayerID("p-bob")
	msg, err := s.service.Post(s.ctx, "game-1", "p-ann", "psst", &to)
	s.Require().NoError(err)
	s.True(msg.IsPrivate)
	s.Require().NotNil(msg.ToPlayerID)
	s.Equal(to, *msg.ToPlayerID)
}

func (s *ServiceSuite) TestPostSenderNotInGame() {
	_, err := s.service.Post(s.ctx, "game-1", "p-unknown", "hi", nil)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "game-2", Code: "XYZ789"}))
	_, err = s.service.Post(s.ctx, "game-2", "p-ann", "hi", nil)
	s.ErrorIs(err, model.ErrNotInGame)
}

func (s *ServiceSuite) TestPostRecipientNotInGame() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:     "p-other",
		GameID: "game-2",
		Name:   "Outsider",
		Role:   model.RoleHearts,
	}))

	to := model.PlayerID("p-other")
	_, err := s.service.Post(s.ctx, "game-1", "p-ann", "psst", &to)
	s.ErrorIs(err, model.ErrNotInGame)

	missing := model.PlayerID("p-unknown")
	_, err = s.service.Post(s.ctx, "game-1", "p-ann", "psst", &missing)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestListForFiltersPrivateMessages() {
	bob := model.PlayerID("p-bob")
	_, _ = s.service.Post(s.ctx, "game-1", "p-ann", "hello all", nil)
	_, _ = s.service.Post(s.ctx, "game-1", "p-ann", "psst bob", &bob)
	_, _ = s.service.Post(s.ctx, "game-1", "p-cid", "hi there", nil)

	// Ann sees everything she sent plus public messages
	annMsgs, err := s.service.ListFor(s.ctx, "game-1", "p-ann")
	s.Require().NoError(err)
	s.Len(annMsgs, 3)

	// Bob sees the private message addressed to him
	bobMsgs, err := s.service.ListFor(s.ctx, "game-1", "p-bob")
	s.Require().NoError(err)
	s.Len(bobMsgs, 3)

	// Cid only sees the public messages
	cidMsgs, err := s.service.ListFor(s.ctx, "game-1", "p-cid")
	s.Require().NoError(err)
	s.Require().Len(cidMsgs, 2)
	s.Equal("hello all", cidMsgs[0].Content)
	s.Equal("hi there", cidMsgs[1].Content)
}

func (s *ServiceSuite) TestListForGameNotFound() {
	_, err := s.service.ListFor(s.ctx, "nonexistent", "p-ann")
	s.ErrorIs(err, model.ErrGameNotFound)
}
