package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFull            = errors.New("game is full")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrInvalidJokerTarget  = errors.New("invalid joker target")
	ErrWrongPassword       = errors.New("wrong password")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrInvalidName    = errors.New("invalid player name")
	ErrNotInGame      = errors.New("player is not in this game")
)
