package roles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maddken/jokerparty/internal/dependencies/random"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/storage"
)

// Engine deals secret roles. It has no locking of its own; callers hold the
// per-game lock across any call that mutates players.
type Engine struct {
	store  storage.Storage
	random random.Random
	logger *slog.Logger
}

func NewEngine(store storage.Storage, rnd random.Random, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		random: rnd,
		logger: logger,
	}
}

// SeedRole draws a provisional role for a player joining the lobby. The draw
// comes from the weighted seed deck with one slot removed for each role
// already held, so early joiners cannot exhaust a single suit.
func (e *Engine) SeedRole(held []model.Role) model.Role {
	pool := model.SeedPool()
	for _, h := range held {
		for i, r := range pool {
			if r == h {
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}
	if len(pool) == 0 {
		// More players than seed slots; fall back to a uniform non-joker draw
		disguises := model.DisguiseRoles()
		return disguises[e.random.Intn(len(disguises))]
	}
	return pool[e.random.Intn(len(pool))]
}

// AssignForStart deals the authoritative roles when a game starts, replacing
// any provisional lobby roles. Exactly jokerTarget jokers are dealt (clamped
// to the player count), the rest of the deck is filled with uniform non-joker
// draws, and the deck is shuffled before being assigned in join order. Each
// joker receives a disguise drawn uniformly from the non-joker roles.
func (e *Engine) AssignForStart(ctx context.Context, game *model.Game, players []*model.Player) error {
	jokers := game.JokerTarget
	if jokers > len(players) {
		jokers = len(players)
	}
	if jokers < 0 {
		jokers = 0
	}

	deck := make([]model.Role, 0, len(players))
	for i := 0; i < jokers; i++ {
		deck = append(deck, model.RoleJoker)
	}
	disguises := model.DisguiseRoles()
	for len(deck) < len(players) {
		deck = append(deck, disguises[e.random.Intn(len(disguises))])
	}

	e.shuffle(deck)

	for i, p := range players {
		p.Role = deck[i]
		p.DisguisedAs = nil
		if p.IsJoker() {
			d := disguises[e.random.Intn(len(disguises))]
			p.DisguisedAs = &d
		}
	}

	// One batch write: the deal lands for the whole roster or not at all
	if err := e.store.SavePlayers(ctx, players); err != nil {
		return fmt.Errorf("saving dealt roles: %w", err)
	}

	e.logger.InfoContext(ctx, "dealt starting roles",
		slog.String("game_id", string(game.ID)),
		slog.Int("players", len(players)),
		slog.Int("jokers", jokers))
	return nil
}

// ReassignForRound redeals roles for a new round. Non-jokers draw without
// replacement from the non-joker deck, which is refilled if the table is
// large enough to exhaust it. Jokers keep the joker role and receive a fresh
// disguise so their presented identity changes round to round.
func (e *Engine) ReassignForRound(ctx context.Context, game *model.Game, players []*model.Player) error {
	pool := model.RoundPool()
	disguises := model.DisguiseRoles()

	for _, p := range players {
		if p.IsJoker() {
			continue
		}
		if len(pool) == 0 {
			pool = model.RoundPool()
		}
		idx := e.random.Intn(len(pool))
		p.Role = pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		p.DisguisedAs = nil
	}

	for _, p := range players {
		if !p.IsJoker() {
			continue
		}
		d := disguises[e.random.Intn(len(disguises))]
		p.DisguisedAs = &d
	}

	if err := e.store.SavePlayers(ctx, players); err != nil {
		return fmt.Errorf("saving redealt roles: %w", err)
	}

	e.logger.InfoContext(ctx, "redealt roles for round",
		slog.String("game_id", string(game.ID)),
		slog.Int("players", len(players)))
	return nil
}

// shuffle performs an in-place Fisher-Yates shuffle
func (e *Engine) shuffle(deck []model.Role) {
	for i := len(deck) - 1; i > 0; i-- {
		j := e.random.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
