package game

import (
	"snake-sprites/game/entity"
	"snake-sprites/game/types"
)

// Snapshot is a read-only copy of the game state handed to renderers. It
// shares no memory with the live game.
type Snapshot struct {
	SessionID   string
	Score       int
	LengthMoved int
	Paused      bool
	Direction   types.Direction // commanded direction
	Segments    []entity.Segment
	Sprites     []entity.Sprite
	Grid        types.Grid
}

// Snapshot copies the committed state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		SessionID:   g.UUID,
		Score:       g.w.stats.GetScore(),
		LengthMoved: g.w.stats.GetLengthMoved(),
		Paused:      g.w.stats.IsPaused(),
		Direction:   g.w.direction,
		Segments:    append([]entity.Segment(nil), g.w.snake.Segments...),
		Sprites:     g.w.sprites.GetSpriteList(),
		Grid:        g.w.grid,
	}
}

// Head returns the head segment.
func (s Snapshot) Head() entity.Segment {
	return s.Segments[len(s.Segments)-1]
}

// Tail returns the tail segment.
func (s Snapshot) Tail() entity.Segment {
	return s.Segments[0]
}

// TotalLength sums the segment lengths.
func (s Snapshot) TotalLength() int {
	total := 0
	for _, seg := range s.Segments {
		total += seg.Length
	}
	return total
}
