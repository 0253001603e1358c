package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// GameCode is a short human-shareable identifier for joining games
type GameCode string

// Game represents a party game session
type Game struct {
	ID      GameID
	Code    GameCode
	Started bool

	// JokerTarget is the number of joker roles dealt at the next start
	JokerTarget int

	// PasswordHash is a bcrypt hash of the game password; empty for open games
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether the game was created with a password
func (g *Game) HasPassword() bool {
	return g.PasswordHash != ""
}
