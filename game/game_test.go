package game

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"snake-sprites/game/entity"
	"snake-sprites/game/types"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// cornerRand always picks the bottom-right cell and a fixed fraction, which
// keeps spawned sprites out of the snake's way.
type cornerRand struct {
	f float64
}

func (r cornerRand) Intn(n int) int { return n - 1 }
func (r cornerRand) Float64() float64 { return r.f }

func newTestGame(t *testing.T, cfg Config, rng types.RandomSource) (*Game, *types.ManualClock) {
	t.Helper()
	clock := types.NewManualClock(epoch)
	if rng == nil {
		rng = cornerRand{f: 0.99}
	}
	g, err := NewGame(cfg, clock, rng)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, clock
}

func grid50() Config {
	cfg := DefaultConfig()
	cfg.GridWidth, cfg.GridHeight = 50, 50
	return cfg
}

func mustAdvance(t *testing.T, g *Game) TickResult {
	t.Helper()
	res, err := g.Advance()
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	return res
}

func TestNewGameStartState(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	snap := g.Snapshot()

	want := []entity.Segment{{Head: types.Point{X: 10, Y: 10}, Direction: types.Right, Length: 7, PartNumber: 1}}
	if !reflect.DeepEqual(snap.Segments, want) {
		t.Errorf("segments = %+v, want %+v", snap.Segments, want)
	}
	if snap.Score != 0 || snap.LengthMoved != 0 || snap.Paused || len(snap.Sprites) != 0 {
		t.Errorf("unexpected start counters %+v", snap)
	}
	if snap.SessionID == "" || snap.SessionID != g.UUID {
		t.Errorf("session id %q, game %q", snap.SessionID, g.UUID)
	}
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth = 0
	if _, err := NewGame(cfg, nil, nil); !errors.Is(err, types.ErrInvalidBounds) {
		t.Errorf("err = %v, want ErrInvalidBounds", err)
	}
}

func TestAdvanceSingleSegment(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)

	res := mustAdvance(t, g)

	want := []entity.Segment{{Head: types.Point{X: 11, Y: 10}, Direction: types.Right, Length: 7, PartNumber: 1}}
	snap := g.Snapshot()
	if !reflect.DeepEqual(snap.Segments, want) {
		t.Errorf("segments = %+v, want %+v", snap.Segments, want)
	}
	if !res.Executed || res.Split || res.Wrapped {
		t.Errorf("unexpected tick result %+v", res)
	}
	if snap.LengthMoved != 1 {
		t.Errorf("lengthMoved = %d, want 1", snap.LengthMoved)
	}
}

func TestAdvanceDirectionChange(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	if changed, err := g.SetDirection(types.Up); err != nil || !changed {
		t.Fatalf("SetDirection = %v, %v", changed, err)
	}

	res := mustAdvance(t, g)

	want := []entity.Segment{
		{Head: types.Point{X: 10, Y: 10}, Direction: types.Right, Length: 6, PartNumber: 1},
		{Head: types.Point{X: 10, Y: 9}, Direction: types.Up, Length: 1, PartNumber: 2},
	}
	if got := g.Snapshot().Segments; !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %+v, want %+v", got, want)
	}
	if !res.Split {
		t.Error("split not reported")
	}
}

func TestAdvanceWrapAtRightEdge(t *testing.T) {
	g, _ := newTestGame(t, grid50(), nil)
	if err := g.ReplaceSnake([]entity.Segment{
		{Head: types.Point{X: 50, Y: 10}, Direction: types.Right, Length: 3, PartNumber: 1},
	}); err != nil {
		t.Fatal(err)
	}

	res := mustAdvance(t, g)

	want := []entity.Segment{
		{Head: types.Point{X: 50, Y: 10}, Direction: types.Right, Length: 2, PartNumber: 1},
		{Head: types.Point{X: 1, Y: 10}, Direction: types.Right, Length: 1, PartNumber: 2},
	}
	if got := g.Snapshot().Segments; !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %+v, want %+v", got, want)
	}
	if !res.Wrapped {
		t.Error("wrap not reported")
	}
}

func TestPausedTickChangesNothing(t *testing.T) {
	g, clock := newTestGame(t, DefaultConfig(), nil)
	g.PlaceSprite(types.Point{X: 30, Y: 30}, time.Second)
	if !g.TogglePause() {
		t.Fatal("TogglePause did not pause")
	}
	before := g.Snapshot()

	clock.Advance(time.Minute)
	for i := 0; i < 5; i++ {
		res := mustAdvance(t, g)
		if res.Executed {
			t.Fatal("tick executed while paused")
		}
	}

	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed while paused:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestDirectionQueuedWhilePaused(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	g.TogglePause()

	if err := g.Apply(CommandDown); err != nil {
		t.Fatal(err)
	}
	mustAdvance(t, g)
	if g.Snapshot().Head().Direction != types.Right {
		t.Fatal("queued direction applied while paused")
	}

	if err := g.Apply(CommandPause); err != nil {
		t.Fatal(err)
	}
	mustAdvance(t, g)

	head := g.Snapshot().Head()
	if head.Direction != types.Down || head.Head != (types.Point{X: 10, Y: 11}) {
		t.Errorf("head = %+v, want moving down at (10,11)", head)
	}
}

func TestConsumeSeveralSpritesInOneTick(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	g.SetDirection(types.Up)
	for i := 0; i < 2; i++ {
		if _, err := g.PlaceSprite(types.Point{X: 10, Y: 8}, time.Minute); err != nil {
			t.Fatal(err)
		}
	}

	if res := mustAdvance(t, g); res.Eaten != 0 {
		t.Fatalf("ate %d one cell early", res.Eaten)
	}
	res := mustAdvance(t, g)

	snap := g.Snapshot()
	if res.Eaten != 2 || snap.Score != 2 {
		t.Errorf("eaten %d, score %d, want 2 and 2", res.Eaten, snap.Score)
	}
	if got := snap.Tail().Length; got != 7 {
		t.Errorf("tail length %d, want 7", got)
	}
	if got := snap.TotalLength(); got != 9 {
		t.Errorf("total length %d, want 9", got)
	}
	if len(snap.Sprites) != 0 {
		t.Errorf("sprites left on the board: %+v", snap.Sprites)
	}
}

func TestExpiryRemovesOnlyExpiredSprites(t *testing.T) {
	g, clock := newTestGame(t, DefaultConfig(), nil)
	g.PlaceSprite(types.Point{X: 1, Y: 30}, time.Second)
	g.PlaceSprite(types.Point{X: 2, Y: 30}, 5*time.Second)

	clock.Advance(time.Second)
	res := mustAdvance(t, g)
	if res.Expired != 0 {
		t.Errorf("expired %d at the exact lifetime", res.Expired)
	}

	clock.Advance(time.Millisecond)
	res = mustAdvance(t, g)
	if res.Expired != 1 {
		t.Errorf("expired %d, want 1", res.Expired)
	}

	var ids []int
	for _, s := range g.Snapshot().Sprites {
		ids = append(ids, s.ID)
	}
	// Sprite 3 was spawned on the first tick after start.
	if want := []int{2, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("sprite ids %v, want %v", ids, want)
	}
}

func TestSpawnSchedule(t *testing.T) {
	g, clock := newTestGame(t, DefaultConfig(), cornerRand{f: 0.5})

	if res := mustAdvance(t, g); res.Spawned {
		t.Fatal("spawned without time passing")
	}

	clock.Advance(100 * time.Millisecond)
	if res := mustAdvance(t, g); !res.Spawned {
		t.Fatal("first spawn missed")
	}
	sprites := g.Snapshot().Sprites
	if len(sprites) != 1 {
		t.Fatalf("got %d sprites", len(sprites))
	}
	s := sprites[0]
	if s.Position != (types.Point{X: 64, Y: 36}) || s.Lifetime != 25*time.Second || !s.SpawnTime.Equal(clock.Now()) {
		t.Errorf("sprite = %+v", s)
	}

	// Gap is 10s * 0.5.
	clock.Advance(5 * time.Second)
	if res := mustAdvance(t, g); res.Spawned {
		t.Error("spawned exactly at the scheduled time")
	}
	clock.Advance(time.Millisecond)
	if res := mustAdvance(t, g); !res.Spawned {
		t.Error("second spawn missed")
	}
}

func TestRejectedInputLeavesStateUnchanged(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	mustAdvance(t, g)
	before := g.Snapshot()

	if _, err := g.SetDirection(types.Direction(9)); !errors.Is(err, types.ErrInvalidDirection) {
		t.Errorf("SetDirection err = %v", err)
	}
	if err := g.Resize(0, 10); !errors.Is(err, types.ErrInvalidBounds) {
		t.Errorf("Resize err = %v", err)
	}
	if err := g.Apply(CommandNone); !errors.Is(err, types.ErrInvalidCommand) {
		t.Errorf("Apply err = %v", err)
	}
	if _, err := g.PlaceSprite(types.Point{X: 0, Y: 5}, time.Second); !errors.Is(err, types.ErrInvalidBounds) {
		t.Errorf("PlaceSprite err = %v", err)
	}
	var verr *types.ValidationError
	if _, err := g.SetDirection(types.None); !errors.As(err, &verr) {
		t.Errorf("SetDirection(None) err = %v, want *ValidationError", err)
	}

	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestInvariantViolationKeepsLastGoodState(t *testing.T) {
	g, _ := newTestGame(t, grid50(), nil)
	// An empty head at the edge would be left with a negative length.
	if err := g.ReplaceSnake([]entity.Segment{
		{Head: types.Point{X: 50, Y: 10}, Direction: types.Right, Length: 0, PartNumber: 1},
	}); err != nil {
		t.Fatal(err)
	}
	before := g.Snapshot()

	_, err := g.Advance()

	var iv *types.InvariantViolation
	if !errors.As(err, &iv) {
		t.Fatalf("err = %v, want *InvariantViolation", err)
	}
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("failed tick was committed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestReplaceSnakeRejectsBrokenBody(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	err := g.ReplaceSnake([]entity.Segment{
		{Head: types.Point{X: 5, Y: 5}, Direction: types.Right, Length: 2, PartNumber: 3},
		{Head: types.Point{X: 6, Y: 5}, Direction: types.Right, Length: 2, PartNumber: 1},
	})
	var iv *types.InvariantViolation
	if !errors.As(err, &iv) {
		t.Errorf("err = %v, want *InvariantViolation", err)
	}
	if got := g.Snapshot().Head().Head; got != types.StartPoint {
		t.Errorf("snake replaced anyway, head at %v", got)
	}
}

func TestResizeKeepsCoordinates(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	if err := g.Resize(8, 20); err != nil {
		t.Fatal(err)
	}
	snap := g.Snapshot()
	if snap.Grid != (types.Grid{Width: 8, Height: 20}) {
		t.Errorf("grid = %+v", snap.Grid)
	}
	if snap.Head().Head != types.StartPoint {
		t.Errorf("head moved to %v by resize", snap.Head().Head)
	}

	// The head is outside the new bounds and wraps on the next step.
	res := mustAdvance(t, g)
	if !res.Wrapped || g.Snapshot().Head().Head != (types.Point{X: 1, Y: 10}) {
		t.Errorf("head %v after resize, result %+v", g.Snapshot().Head().Head, res)
	}
}

func TestLengthMovedCountsExecutedTicks(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	for i := 0; i < 4; i++ {
		mustAdvance(t, g)
	}
	g.TogglePause()
	mustAdvance(t, g)
	g.TogglePause()
	mustAdvance(t, g)

	if got := g.Snapshot().LengthMoved; got != 5 {
		t.Errorf("lengthMoved = %d, want 5", got)
	}
}

func TestFreezeSpritesWhilePaused(t *testing.T) {
	for _, freeze := range []bool{false, true} {
		cfg := DefaultConfig()
		cfg.FreezeSpritesWhilePaused = freeze
		g, clock := newTestGame(t, cfg, nil)
		g.PlaceSprite(types.Point{X: 1, Y: 30}, 2*time.Second)

		g.TogglePause()
		clock.Advance(10 * time.Second)
		g.TogglePause()
		res := mustAdvance(t, g)

		want := 1
		if freeze {
			want = 0
		}
		if res.Expired != want {
			t.Errorf("freeze=%v: expired %d, want %d", freeze, res.Expired, want)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _ := newTestGame(t, DefaultConfig(), nil)
	g.PlaceSprite(types.Point{X: 3, Y: 3}, time.Second)

	snap := g.Snapshot()
	snap.Segments[0].Length = 100
	snap.Sprites[0].Position = types.Point{X: 9, Y: 9}

	fresh := g.Snapshot()
	if fresh.Segments[0].Length != 7 || fresh.Sprites[0].Position != (types.Point{X: 3, Y: 3}) {
		t.Errorf("snapshot aliases game state: %+v", fresh)
	}
}

// TestLongRunAccounting plays a dense board with random turns and checks the
// per-tick bookkeeping: length grows by exactly what was eaten, the score
// follows and every executed tick counts as one move.
func TestLongRunAccounting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth, cfg.GridHeight = 10, 8
	cfg.SpriteSpawnRate = 50
	rng := rand.New(rand.NewSource(3))
	g, clock := newTestGame(t, cfg, rng)
	turns := rand.New(rand.NewSource(4))
	commands := []Command{CommandUp, CommandLeft, CommandDown, CommandRight}

	eatenTotal := 0
	for i := 0; i < 3000; i++ {
		if turns.Intn(4) == 0 {
			if err := g.Apply(commands[turns.Intn(len(commands))]); err != nil {
				t.Fatal(err)
			}
		}
		before := g.Snapshot()
		clock.Advance(100 * time.Millisecond)

		res := mustAdvance(t, g)
		after := g.Snapshot()
		eatenTotal += res.Eaten

		if after.TotalLength() != before.TotalLength()+res.Eaten {
			t.Fatalf("tick %d: length %d -> %d with %d eaten", i, before.TotalLength(), after.TotalLength(), res.Eaten)
		}
		if after.Score != before.Score+res.Eaten {
			t.Fatalf("tick %d: score %d -> %d with %d eaten", i, before.Score, after.Score, res.Eaten)
		}
		if after.LengthMoved != before.LengthMoved+1 {
			t.Fatalf("tick %d: lengthMoved %d -> %d", i, before.LengthMoved, after.LengthMoved)
		}
		if after.Grid.IsOutOfBounds(after.Head().Head) {
			t.Fatalf("tick %d: head %v out of bounds", i, after.Head().Head)
		}
		if after.Head().PartNumber < before.Head().PartNumber {
			t.Fatalf("tick %d: head part number went back", i)
		}
	}
	if eatenTotal == 0 {
		t.Error("nothing eaten on a dense board")
	}
	t.Logf("score %d after 3000 ticks", eatenTotal)
}

func TestSameSeedSameGame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.GridWidth, cfg.GridHeight = 20, 15
	cfg.SpriteSpawnRate = 20

	play := func() Snapshot {
		clock := types.NewManualClock(epoch)
		g, err := NewGame(cfg, clock, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 500; i++ {
			if i%37 == 0 {
				g.Apply(Command(1 + i%4))
			}
			clock.Advance(100 * time.Millisecond)
			if _, err := g.Advance(); err != nil {
				t.Fatal(err)
			}
		}
		snap := g.Snapshot()
		snap.SessionID = ""
		return snap
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if len(a.Sprites) == 0 && a.Score == 0 {
		t.Error("no sprites ever spawned")
	}
}
