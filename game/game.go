package game

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-sprites/game/entity"
	"snake-sprites/game/manager"
	"snake-sprites/game/types"
)

// world is everything a tick may change. Advance works on a copy and swaps
// it in only once the copy passed validation.
type world struct {
	grid      types.Grid
	direction types.Direction // commanded direction, applied on the next tick
	snake     *entity.Snake
	sprites   *manager.SpriteManager
	stats     manager.StateManager
}

func (w *world) clone() *world {
	return &world{
		grid:      w.grid,
		direction: w.direction,
		snake:     w.snake.Clone(),
		sprites:   w.sprites.Clone(),
		stats:     w.stats,
	}
}

// TickResult describes what a single Advance did.
type TickResult struct {
	Executed bool // false while paused
	Split    bool
	Wrapped  bool
	Pruned   int
	Eaten    int
	Expired  int
	Spawned  bool
}

// Game is the simulation state. It is not safe for concurrent use; Clock
// serialises access to it.
type Game struct {
	UUID      string
	StartTime time.Time

	cfg    Config
	clock  types.TimeSource
	pauser *PausableClock
	w      *world
}

// NewGame builds a session with a single segment snake at the start point.
// A nil clock uses the wall clock; a nil rng is seeded from cfg.Seed, or
// from the clock when the seed is zero.
func NewGame(cfg Config, clock types.TimeSource, rng types.RandomSource) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := types.NewGrid(cfg.GridWidth, cfg.GridHeight)
	if err != nil {
		return nil, err
	}

	if clock == nil {
		clock = types.SystemClock{}
	}
	var pauser *PausableClock
	if cfg.FreezeSpritesWhilePaused {
		pauser = NewPausableClock(clock)
		clock = pauser
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(clock.Now().UnixNano())
		}
		rng = rand.New(rand.NewSource(seed))
	}

	start := clock.Now()
	g := &Game{
		UUID:      uuid.New().String(),
		StartTime: start,
		cfg:       cfg,
		clock:     clock,
		pauser:    pauser,
		w: &world{
			grid:      grid,
			direction: types.Right,
			snake:     entity.NewSnake(types.StartPoint, types.Right, types.StartLength),
			sprites:   manager.NewSpriteManager(cfg.SpawnSettings(), rng, start),
			stats:     *manager.NewStateManager(),
		},
	}

	glog.Infof("session %s started on %dx%d grid, tick %v", g.UUID, grid.Width, grid.Height, cfg.TickInterval())
	return g, nil
}

// Advance runs one tick. While paused it changes nothing at all.
func (g *Game) Advance() (TickResult, error) {
	if g.w.stats.IsPaused() {
		return TickResult{}, nil
	}

	next := g.w.clone()
	res := TickResult{Executed: true}
	before := next.snake.TotalLength()

	move := next.snake.Move(next.direction, next.grid)
	res.Split, res.Wrapped, res.Pruned = move.Split, move.Wrapped, move.Pruned
	if move.Wrapped {
		head := next.snake.GetHead()
		glog.V(1).Infof("head wrapped to (%d,%d)", head.Head.X, head.Head.Y)
	}

	if got := next.snake.TotalLength(); got != before {
		return TickResult{}, &types.InvariantViolation{
			Invariant: "length conservation",
			Detail:    fmt.Sprintf("movement changed total length from %d to %d", before, got),
		}
	}

	now := g.clock.Now()

	res.Eaten = next.sprites.Consume(next.snake.GetHead().Head)
	next.stats.AddScore(res.Eaten)
	next.snake.Grow(res.Eaten)

	res.Expired = next.sprites.Expire(now)
	_, res.Spawned = next.sprites.TrySpawn(now, next.grid)

	next.stats.RecordMove()

	if err := next.snake.Validate(); err != nil {
		return TickResult{}, err
	}

	g.w = next
	if glog.V(2) {
		glog.Infof("tick %d: %d segments, length %d, %d sprites, score %d",
			next.stats.GetLengthMoved(), len(next.snake.Segments), next.snake.TotalLength(),
			len(next.sprites.GetSpriteList()), next.stats.GetScore())
	}
	return res, nil
}

// SetDirection queues a direction for the next tick. It reports false when d
// is already the commanded direction. Allowed while paused.
func (g *Game) SetDirection(d types.Direction) (bool, error) {
	if !d.Valid() {
		return false, types.NewValidationError(types.ErrInvalidDirection, "direction %v", d)
	}
	if d == g.w.direction {
		return false, nil
	}
	g.w.direction = d
	return true, nil
}

// TogglePause flips the pause state and returns the new value.
func (g *Game) TogglePause() bool {
	paused := g.w.stats.TogglePause()
	if g.pauser != nil {
		if paused {
			g.pauser.Pause()
		} else {
			g.pauser.Resume()
		}
	}
	glog.Infof("session %s paused=%v", g.UUID, paused)
	return paused
}

// Resize replaces the grid bounds. Nothing on the board is moved.
func (g *Game) Resize(width, height int) error {
	if err := g.w.grid.Resize(width, height); err != nil {
		return err
	}
	glog.Infof("session %s resized to %dx%d", g.UUID, width, height)
	return nil
}

// Apply executes a player command.
func (g *Game) Apply(cmd Command) error {
	if cmd == CommandPause {
		g.TogglePause()
		return nil
	}
	d, ok := cmd.Direction()
	if !ok {
		return types.NewValidationError(types.ErrInvalidCommand, "command %v", cmd)
	}
	_, err := g.SetDirection(d)
	return err
}

func (g *Game) GetGrid() types.Grid {
	return g.w.grid
}

func (g *Game) GetSnake() *entity.Snake {
	return g.w.snake.Clone()
}

func (g *Game) GetDirection() types.Direction {
	return g.w.direction
}

func (g *Game) IsPaused() bool {
	return g.w.stats.IsPaused()
}

func (g *Game) GetConfig() Config {
	return g.cfg
}

// Now returns the simulation time used for sprite ages.
func (g *Game) Now() time.Time {
	return g.clock.Now()
}

// PlaceSprite puts a sprite on the board outside the spawn schedule.
func (g *Game) PlaceSprite(pos types.Point, lifetime time.Duration) (entity.Sprite, error) {
	if g.w.grid.IsOutOfBounds(pos) {
		return entity.Sprite{}, types.NewValidationError(types.ErrInvalidBounds,
			"sprite at (%d,%d) outside %dx%d grid", pos.X, pos.Y, g.w.grid.Width, g.w.grid.Height)
	}
	return g.w.sprites.AddSprite(pos, g.clock.Now(), lifetime), nil
}

// ReplaceSnake swaps in a body built from segments, after validating it.
func (g *Game) ReplaceSnake(segments []entity.Segment) error {
	snake := entity.RestoreSnake(segments)
	if err := snake.Validate(); err != nil {
		return err
	}
	g.w.snake = snake
	g.w.direction = snake.Direction()
	return nil
}
