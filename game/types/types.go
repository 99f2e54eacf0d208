package types

// Point is a grid cell. Cells are 1-indexed: a grid of Width x Height spans
// (1,1) to (Width,Height).
type Point struct {
	X, Y int
}

// Step returns the neighbouring cell in direction d.
func (p Point) Step(d Direction) Point {
	delta := d.ToPoint()
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Game defaults
const (
	DefaultPixelSize         = 20
	DefaultGameSpeed         = 1.0
	DefaultSpriteSpawnRate   = 1.0
	DefaultSpriteMinLifetime = 10000 // ms
	DefaultSpriteMaxLifetime = 40000 // ms
	BaseTickIntervalMs       = 100   // divided by game speed
	BaseSpriteSpawnMs        = 10000 // a sprite spawns at least this often at rate 1

	StartLength = 7
)

// StartPoint is where a fresh snake's head is placed.
var StartPoint = Point{X: 10, Y: 10}
