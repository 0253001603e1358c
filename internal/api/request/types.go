package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Password string `json:"password,omitempty"`
}

// VerifyPasswordRequest is the request body for verifying a game password
type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// JoinGameRequest is the request body for joining a game
type JoinGameRequest struct {
	Name     string `json:"name"`
	DeviceID string `json:"device_id"`
}

// SetJokerTargetRequest is the request body for changing the joker count
type SetJokerTargetRequest struct {
	Count int `json:"count"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	JokerTarget *int `json:"joker_target,omitempty"`
}

// PostMessageRequest is the request body for posting a message
type PostMessageRequest struct {
	PlayerID   string  `json:"player_id"`
	Content    string  `json:"content"`
	ToPlayerID *string `json:"to_player_id,omitempty"`
}
