package ui

import (
	"fmt"

	"snake-sprites/game"
	"snake-sprites/game/types"
)

// Layout places grid cells inside a pixel viewport. The grid is scaled to
// the largest square cell that fits and centered.
type Layout struct {
	Cell    int32
	OffsetX int32
	OffsetY int32
}

func NewLayout(screenWidth, screenHeight int32, grid types.Grid) Layout {
	cell := min(screenWidth/int32(grid.Width), screenHeight/int32(grid.Height))
	if cell < 1 {
		cell = 1
	}
	return Layout{
		Cell:    cell,
		OffsetX: (screenWidth - cell*int32(grid.Width)) / 2,
		OffsetY: (screenHeight - cell*int32(grid.Height)) / 2,
	}
}

// CellOrigin returns the top-left pixel of a 1-indexed cell.
func (l Layout) CellOrigin(p types.Point) (int32, int32) {
	return l.OffsetX + int32(p.X-1)*l.Cell, l.OffsetY + int32(p.Y-1)*l.Cell
}

// DetailsLines is the text of the game details panel.
func DetailsLines(snap game.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Length moved: %d", snap.LengthMoved),
	}
	if snap.Paused {
		lines = append(lines, "Game paused")
	}
	return lines
}

// scoreTracker reports score increases between snapshots.
type scoreTracker struct {
	last int
}

func (t *scoreTracker) Update(score int) bool {
	increased := score > t.last
	t.last = score
	return increased
}
