package response

import (
	"time"

	"github.com/maddken/jokerparty/internal/model"
)

// Game represents a game in API responses. The password hash never leaves the
// server; clients only learn whether a password exists.
type Game struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Started     bool      `json:"started"`
	JokerTarget int       `json:"joker_target"`
	HasPassword bool      `json:"has_password"`
	CreatedAt   time.Time `json:"created_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:          string(g.ID),
		Code:        string(g.Code),
		Started:     g.Started,
		JokerTarget: g.JokerTarget,
		HasPassword: g.HasPassword(),
		CreatedAt:   g.CreatedAt,
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// Player represents a player in API responses. Device ids are not exposed.
type Player struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	DisguisedAs *string   `json:"disguised_as"`
	JoinedAt    time.Time `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	var disguise *string
	if p.DisguisedAs != nil {
		d := string(*p.DisguisedAs)
		disguise = &d
	}
	return Player{
		ID:          string(p.ID),
		GameID:      string(p.GameID),
		Name:        p.Name,
		Role:        string(p.Role),
		DisguisedAs: disguise,
		JoinedAt:    p.JoinedAt,
	}
}

// PlayersFromModel converts a slice of players, preserving order
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Message represents a message in API responses
type Message struct {
	ID         string    `json:"id"`
	GameID     string    `json:"game_id"`
	PlayerID   string    `json:"player_id"`
	ToPlayerID *string   `json:"to_player_id"`
	Content    string    `json:"content"`
	IsPrivate  bool      `json:"is_private"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageFromModel converts a model.Message to a response Message
func MessageFromModel(m *model.Message) Message {
	var to *string
	if m.ToPlayerID != nil {
		t := string(*m.ToPlayerID)
		to = &t
	}
	return Message{
		ID:         string(m.ID),
		GameID:     string(m.GameID),
		PlayerID:   string(m.PlayerID),
		ToPlayerID: to,
		Content:    m.Content,
		IsPrivate:  m.IsPrivate,
		CreatedAt:  m.CreatedAt,
	}
}

// MessagesFromModel converts a slice of messages, preserving order
func MessagesFromModel(messages []*model.Message) []Message {
	out := make([]Message, len(messages))
	for i, m := range messages {
		out[i] = MessageFromModel(m)
	}
	return out
}
