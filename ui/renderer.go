package ui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-sprites/game"
	"snake-sprites/game/entity"
	"snake-sprites/game/types"
)

const (
	panelPadding = 10
	fontSize     = 20
	lineHeight   = 24
)

var (
	bodyColor   = rl.Color{R: 60, G: 200, B: 90, A: 255}
	headColor   = rl.Color{R: 78, G: 255, B: 117, A: 255}
	spriteColor = rl.Red
)

// Renderer draws snapshots into the raylib window.
type Renderer struct {
	showDetails bool
	layout      Layout
}

func NewRenderer(showDetails bool) *Renderer {
	return &Renderer{showDetails: showDetails}
}

// Draw renders one frame. now is the simulation time used to fade sprites.
func (r *Renderer) Draw(snap game.Snapshot, now time.Time) {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())
	r.layout = NewLayout(screenWidth, screenHeight, snap.Grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Board background
	rl.DrawRectangle(
		r.layout.OffsetX-1,
		r.layout.OffsetY-1,
		r.layout.Cell*int32(snap.Grid.Width)+2,
		r.layout.Cell*int32(snap.Grid.Height)+2,
		rl.DarkGray)

	for _, s := range snap.Sprites {
		r.drawCell(snap.Grid, s.Position, rl.Fade(spriteColor, float32(s.Opacity(now))))
	}

	for i, seg := range snap.Segments {
		for _, p := range seg.Cells() {
			r.drawCell(snap.Grid, p, bodyColor)
		}
		if i == len(snap.Segments)-1 {
			r.drawHead(snap.Grid, seg)
		}
	}

	if r.showDetails {
		r.drawDetails(snap)
	}
	rl.EndDrawing()
}

func (r *Renderer) drawCell(grid types.Grid, p types.Point, color rl.Color) {
	// Cells left outside the board by a shrink are not drawn.
	if grid.IsOutOfBounds(p) {
		return
	}
	x, y := r.layout.CellOrigin(p)
	rl.DrawRectangle(x, y, r.layout.Cell, r.layout.Cell, color)
}

// drawHead highlights the leading cell and points it in the travel direction.
func (r *Renderer) drawHead(grid types.Grid, seg entity.Segment) {
	if grid.IsOutOfBounds(seg.Head) {
		return
	}
	r.drawCell(grid, seg.Head, headColor)

	headX, headY := r.layout.CellOrigin(seg.Head)
	cell := float32(r.layout.Cell)
	half := cell / 2
	x, y := float32(headX), float32(headY)

	var v1, v2, v3 rl.Vector2
	switch seg.Direction {
	case types.Right:
		v1 = rl.Vector2{X: x + cell, Y: y + half}
		v2 = rl.Vector2{X: x + half, Y: y}
		v3 = rl.Vector2{X: x + half, Y: y + cell}
	case types.Left:
		v1 = rl.Vector2{X: x, Y: y + half}
		v2 = rl.Vector2{X: x + half, Y: y + cell}
		v3 = rl.Vector2{X: x + half, Y: y}
	case types.Down:
		v1 = rl.Vector2{X: x + half, Y: y + cell}
		v2 = rl.Vector2{X: x + cell, Y: y + half}
		v3 = rl.Vector2{X: x, Y: y + half}
	default:
		v1 = rl.Vector2{X: x + half, Y: y}
		v2 = rl.Vector2{X: x, Y: y + half}
		v3 = rl.Vector2{X: x + cell, Y: y + half}
	}
	rl.DrawTriangle(v1, v2, v3, rl.Yellow)
}

func (r *Renderer) drawDetails(snap game.Snapshot) {
	lines := DetailsLines(snap)

	width := int32(0)
	for _, line := range lines {
		width = max(width, rl.MeasureText(line, fontSize))
	}
	height := int32(len(lines))*lineHeight + panelPadding

	rl.DrawRectangle(panelPadding, panelPadding, width+2*panelPadding, height, rl.Fade(rl.DarkGray, 0.8))
	y := int32(2 * panelPadding)
	for _, line := range lines {
		rl.DrawText(line, 2*panelPadding, y, fontSize, rl.White)
		y += lineHeight
	}
}
