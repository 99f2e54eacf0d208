package game

import (
	"context"
	"sync"
	"time"

	"github.com/golang/glog"

	"snake-sprites/game/types"
)

// Clock drives a Game on a fixed tick and serialises every mutation: ticks,
// direction changes, pause toggles and resizes never overlap. Renderers read
// snapshots taken between ticks.
type Clock struct {
	mu       sync.Mutex
	game     *Game
	interval time.Duration

	snapshots chan Snapshot

	runMu   sync.Mutex
	running bool
}

// NewClock creates a clock ticking the game every interval
func NewClock(g *Game, interval time.Duration) *Clock {
	return &Clock{
		game:      g,
		interval:  interval,
		snapshots: make(chan Snapshot, 1),
	}
}

// Interval returns the tick period.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Snapshots delivers the latest snapshot after every tick and command.
// Stale snapshots are dropped, never queued.
func (c *Clock) Snapshots() <-chan Snapshot {
	return c.snapshots
}

// Snapshot returns a copy of the current state.
func (c *Clock) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Snapshot()
}

// Now returns the simulation time renderers should age sprites against.
func (c *Clock) Now() time.Time {
	return c.game.Now()
}

// Tick advances the game once. A failed tick leaves the last good state
// in place and returns the error.
func (c *Clock) Tick() (TickResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.game.Advance()
	if err != nil {
		return res, err
	}
	if res.Executed {
		c.publish(c.game.Snapshot())
	}
	return res, nil
}

// SubmitDirection queues a direction for the next tick. Submitting the
// current direction is a no-op. Directions may be queued while paused.
func (c *Clock) SubmitDirection(d types.Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed, err := c.game.SetDirection(d)
	if changed {
		c.publish(c.game.Snapshot())
	}
	return err
}

// TogglePause flips pause and returns the new state.
func (c *Clock) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	paused := c.game.TogglePause()
	c.publish(c.game.Snapshot())
	return paused
}

// Resize updates the grid bounds.
func (c *Clock) Resize(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.game.Resize(width, height); err != nil {
		return err
	}
	c.publish(c.game.Snapshot())
	return nil
}

// Apply executes a player command.
func (c *Clock) Apply(cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.game.Apply(cmd); err != nil {
		return err
	}
	c.publish(c.game.Snapshot())
	return nil
}

// Run ticks until ctx is done or a tick fails. A late tick runs once; time
// missed while the host was busy is not made up.
func (c *Clock) Run(ctx context.Context) error {
	c.runMu.Lock()
	if c.running {
		c.runMu.Unlock()
		return nil
	}
	c.running = true
	c.runMu.Unlock()

	defer func() {
		c.runMu.Lock()
		c.running = false
		c.runMu.Unlock()
	}()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	glog.V(1).Infof("clock started, interval %v", c.interval)
	for {
		select {
		case <-ctx.Done():
			glog.V(1).Info("clock stopped")
			return nil
		case <-ticker.C:
			if _, err := c.Tick(); err != nil {
				glog.Errorf("tick failed, last good state kept: %v", err)
				return err
			}
		}
	}
}

// publish offers snap to the snapshot channel, replacing any unread one.
// Callers hold c.mu so snapshots go out in order.
func (c *Clock) publish(snap Snapshot) {
	select {
	case c.snapshots <- snap:
		return
	default:
	}
	select {
	case <-c.snapshots:
	default:
	}
	select {
	case c.snapshots <- snap:
	default:
	}
}
