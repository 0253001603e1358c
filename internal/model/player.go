package model

import "time"

// PlayerID uniquely identifies a player within the system
type PlayerID string

// Role is a secret identity dealt to a player
type Role string

const (
	RoleHearts    Role = "hearts"
	RoleDiamonds  Role = "diamonds"
	RoleRectangle Role = "rectangle"
	RoleJoker     Role = "joker"
)

// DisguiseRoles returns the identities a joker may present as.
// Jokers never disguise as other jokers.
func DisguiseRoles() []Role {
	return []Role{RoleHearts, RoleDiamonds, RoleRectangle}
}

// SeedPool returns the weighted deck used to seed roles as players join:
// three copies of each non-joker role plus three jokers.
func SeedPool() []Role {
	return []Role{
		RoleHearts, RoleHearts, RoleHearts,
		RoleDiamonds, RoleDiamonds, RoleDiamonds,
		RoleRectangle, RoleRectangle, RoleRectangle,
		RoleJoker, RoleJoker, RoleJoker,
	}
}

// RoundPool returns the non-joker slots of the seed deck, consumed without
// replacement during round reassignment.
func RoundPool() []Role {
	return []Role{
		RoleHearts, RoleHearts, RoleHearts,
		RoleDiamonds, RoleDiamonds, RoleDiamonds,
		RoleRectangle, RoleRectangle, RoleRectangle,
	}
}

// Player represents a participant in a game session
type Player struct {
	ID       PlayerID
	GameID   GameID
	DeviceID string
	Name     string
	Role     Role

	// DisguisedAs is non-nil only when Role is RoleJoker, and always holds a
	// non-joker role
	DisguisedAs *Role

	JoinedAt time.Time
}

// IsJoker reports whether the player currently holds the joker role
func (p *Player) IsJoker() bool {
	return p.Role == RoleJoker
}
