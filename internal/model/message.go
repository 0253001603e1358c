package model

import "time"

// MessageID uniquely identifies a message
type MessageID string

// Message is one entry in a game's append-only communication log
type Message struct {
	ID       MessageID
	GameID   GameID
	PlayerID PlayerID

	// ToPlayerID is the recipient of a private message; nil for public messages
	ToPlayerID *PlayerID

	Content   string
	IsPrivate bool
	CreatedAt time.Time
}

// VisibleTo reports whether the viewer may read this message. Public messages
// are visible to everyone; private messages only to sender and recipient.
func (m *Message) VisibleTo(viewer PlayerID) bool {
	if !m.IsPrivate {
		return true
	}
	if m.PlayerID == viewer {
		return true
	}
	return m.ToPlayerID != nil && *m.ToPlayerID == viewer
}
