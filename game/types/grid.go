package types

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// NewGrid validates the bounds before building the grid.
func NewGrid(width, height int) (Grid, error) {
	if width < 1 || height < 1 {
		return Grid{}, NewValidationError(ErrInvalidBounds, "grid %dx%d must be at least 1x1", width, height)
	}
	return Grid{Width: width, Height: height}, nil
}

// GridForViewport derives grid bounds from a viewport in pixels, rounding
// partial cells up.
func GridForViewport(widthPx, heightPx, pixelSize int) (Grid, error) {
	if pixelSize < 1 {
		return Grid{}, NewValidationError(ErrInvalidBounds, "pixel size %d must be positive", pixelSize)
	}
	return NewGrid(ceilDiv(widthPx, pixelSize), ceilDiv(heightPx, pixelSize))
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Resize replaces the bounds. Existing coordinates are left alone; anything
// outside the new bounds is corrected the next time it moves.
func (g *Grid) Resize(width, height int) error {
	resized, err := NewGrid(width, height)
	if err != nil {
		return err
	}
	*g = resized
	return nil
}

// IsOutOfBounds checks if a position lies outside [1,Width]x[1,Height]
func (g Grid) IsOutOfBounds(p Point) bool {
	return p.X > g.Width || p.Y > g.Height || p.X < 1 || p.Y < 1
}

// Wrap maps an out of bounds position onto the opposite edge, per axis.
func (g Grid) Wrap(p Point) Point {
	wrapped := p
	if p.X > g.Width {
		wrapped.X = 1
	}
	if p.X < 1 {
		wrapped.X = g.Width
	}
	if p.Y > g.Height {
		wrapped.Y = 1
	}
	if p.Y < 1 {
		wrapped.Y = g.Height
	}
	return wrapped
}

// RandomCell picks a uniformly distributed cell inside the grid.
func (g Grid) RandomCell(rng RandomSource) Point {
	return Point{
		X: rng.Intn(g.Width) + 1,
		Y: rng.Intn(g.Height) + 1,
	}
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}
