package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/maddken/jokerparty/internal/dependencies/clock"
	"github.com/maddken/jokerparty/internal/dependencies/keylock"
	"github.com/maddken/jokerparty/internal/dependencies/random"
	"github.com/maddken/jokerparty/internal/model"
	"github.com/maddken/jokerparty/internal/services/roles"
	"github.com/maddken/jokerparty/internal/services/roster"
	"github.com/maddken/jokerparty/internal/storage"
)

const (
	CodeLength   = 6
	CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	maxCodeAttempts = 100
)

// Config controls game creation and lifecycle rules
type Config struct {
	DefaultJokerTarget int
	MaxJokerTarget     int
	MinPlayersToStart  int

	// OpenWhenUnset makes games created without a password accept any
	// verification attempt. When false, such games reject all attempts.
	OpenWhenUnset bool
}

func DefaultConfig() Config {
	return Config{
		DefaultJokerTarget: 1,
		MaxJokerTarget:     5,
		MinPlayersToStart:  2,
		OpenWhenUnset:      true,
	}
}

// ControllerInterface captures the game operations the API layer depends on
type ControllerInterface interface {
	CreateGame(ctx context.Context, password string) (*model.Game, error)
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	SetJokerTarget(ctx context.Context, code model.GameCode, count int) (*model.Game, error)
	VerifyPassword(ctx context.Context, code model.GameCode, candidate string) error
	Start(ctx context.Context, code model.GameCode, jokerTarget *int) error
	NextRound(ctx context.Context, code model.GameCode) error
	Stop(ctx context.Context, code model.GameCode) error
	Kick(ctx context.Context, code model.GameCode, playerID model.PlayerID) error
}

// Controller owns game sessions and their lifecycle. All state transitions on
// a game run under its per-game lock, and the game is re-read under the lock
// before mutation so concurrent transitions serialize cleanly.
type Controller struct {
	cfg    Config
	store  storage.Storage
	clock  clock.Clock
	random random.Random
	locks  *keylock.KeyLock
	engine *roles.Engine
	roster *roster.Service
	logger *slog.Logger
}

var _ ControllerInterface = (*Controller)(nil)

func NewController(
	cfg Config,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	locks *keylock.KeyLock,
	engine *roles.Engine,
	rosterService *roster.Service,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		cfg:    cfg,
		store:  store,
		clock:  clk,
		random: rnd,
		locks:  locks,
		engine: engine,
		roster: rosterService,
		logger: logger,
	}
}

// CreateGame creates a new game session with a unique join code. A non-empty
// password is stored as a bcrypt hash; the plaintext is never persisted.
func (c *Controller) CreateGame(ctx context.Context, password string) (*model.Game, error) {
	code, err := c.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:          model.GameID(uuid.NewString()),
		Code:        code,
		JokerTarget: c.cfg.DefaultJokerTarget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		game.PasswordHash = string(hash)
	}

	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}

	c.logger.InfoContext(ctx, "game created",
		slog.String("game_id", string(game.ID)),
		slog.String("code", string(game.Code)))
	return game, nil
}

func (c *Controller) generateCode(ctx context.Context) (model.GameCode, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := model.GameCode(c.random.String(CodeLength, CodeAlphabet))
		exists, err := c.store.GameCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("checking code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique game code after %d attempts", maxCodeAttempts)
}

func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.store.GetGame(ctx, id)
}

func (c *Controller) GetGameByCode(ctx context.Context, code model.GameCode) (*model.Game, error) {
	return c.store.GetGameByCode(ctx, code)
}

func (c *Controller) ListGames(ctx context.Context) ([]*model.Game, error) {
	return c.store.ListGames(ctx)
}

// SetJokerTarget changes how many jokers the next start deals
func (c *Controller) SetJokerTarget(ctx context.Context, code model.GameCode, count int) (*model.Game, error) {
	if count < 1 || count > c.cfg.MaxJokerTarget {
		return nil, model.ErrInvalidJokerTarget
	}

	game, unlock, err := c.lockGame(ctx, code)
	if err != nil {
		return nil, err
	}
	defer unlock()

	game.JokerTarget = count
	game.UpdatedAt = c.clock.Now()
	if err := c.store.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}
	return game, nil
}

// VerifyPassword checks a join password against the game's stored hash
func (c *Controller) VerifyPassword(ctx context.Context, code model.GameCode, candidate string) error {
	game, err := c.store.GetGameByCode(ctx, code)
	if err != nil {
		return err
	}

	if !game.HasPassword() {
		if c.cfg.OpenWhenUnset {
			return nil
		}
		return model.ErrWrongPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(game.PasswordHash), []byte(candidate)); err != nil {
		return model.ErrWrongPassword
	}
	return nil
}

// Start transitions a lobby into a running game, dealing authoritative roles.
// An optional jokerTarget override is validated and stored before the deal.
func (c *Controller) Start(ctx context.Context, code model.GameCode, jokerTarget *int) error {
	if jokerTarget != nil && (*jokerTarget < 1 || *jokerTarget > c.cfg.MaxJokerTarget) {
		return model.ErrInvalidJokerTarget
	}

	game, unlock, err := c.lockGame(ctx, code)
	if err != nil {
		return err
	}
	defer unlock()

	if game.Started {
		return model.ErrGameAlreadyStarted
	}
	if jokerTarget != nil {
		game.JokerTarget = *jokerTarget
	}

	players, err := c.store.GetPlayersForGame(ctx, game.ID)
	if err != nil {
		return err
	}
	if len(players) < c.cfg.MinPlayersToStart {
		return model.ErrInsufficientPlayers
	}

	if err := c.engine.AssignForStart(ctx, game, players); err != nil {
		return err
	}

	game.Started = true
	game.UpdatedAt = c.clock.Now()
	if err := c.store.SaveGame(ctx, game); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}

	c.logger.InfoContext(ctx, "game started",
		slog.String("game_id", string(game.ID)),
		slog.Int("joker_target", game.JokerTarget),
		slog.Int("players", len(players)))
	return nil
}

// NextRound redeals roles for a running game
func (c *Controller) NextRound(ctx context.Context, code model.GameCode) error {
	game, unlock, err := c.lockGame(ctx, code)
	if err != nil {
		return err
	}
	defer unlock()

	if !game.Started {
		return model.ErrGameNotStarted
	}

	players, err := c.store.GetPlayersForGame(ctx, game.ID)
	if err != nil {
		return err
	}

	if err := c.engine.ReassignForRound(ctx, game, players); err != nil {
		return err
	}

	game.UpdatedAt = c.clock.Now()
	if err := c.store.SaveGame(ctx, game); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	return nil
}

// Stop returns a running game to the lobby. Roles and disguises are left in
// place; the next start deals over them.
func (c *Controller) Stop(ctx context.Context, code model.GameCode) error {
	game, unlock, err := c.lockGame(ctx, code)
	if err != nil {
		return err
	}
	defer unlock()

	if !game.Started {
		return model.ErrGameNotStarted
	}

	game.Started = false
	game.UpdatedAt = c.clock.Now()
	if err := c.store.SaveGame(ctx, game); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}

	c.logger.InfoContext(ctx, "game stopped", slog.String("game_id", string(game.ID)))
	return nil
}

// Kick removes a player from the roster. The roster service takes the game
// lock itself, so no lock is held here.
func (c *Controller) Kick(ctx context.Context, code model.GameCode, playerID model.PlayerID) error {
	game, err := c.store.GetGameByCode(ctx, code)
	if err != nil {
		return err
	}
	return c.roster.Remove(ctx, game.ID, playerID)
}

// lockGame resolves a code to a game, acquires the game's lock, and re-reads
// the game under the lock so the caller mutates current state
func (c *Controller) lockGame(ctx context.Context, code model.GameCode) (*model.Game, func(), error) {
	game, err := c.store.GetGameByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	unlock := c.locks.Lock(string(game.ID))

	game, err = c.store.GetGame(ctx, game.ID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return game, unlock, nil
}
