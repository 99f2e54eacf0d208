package entity

import (
	"fmt"

	"snake-sprites/game/types"
)

// Segment is a straight run of the body. Head is the leading cell; the body
// extends Length cells behind it, opposite to Direction.
type Segment struct {
	Head       types.Point
	Direction  types.Direction
	Length     int
	PartNumber int
}

// Cells lists the cells covered by the segment, leading cell first.
func (s Segment) Cells() []types.Point {
	if s.Length <= 0 {
		return nil
	}
	cells := make([]types.Point, 0, s.Length)
	back := s.Direction.Opposite()
	p := s.Head
	for i := 0; i < s.Length; i++ {
		cells = append(cells, p)
		p = p.Step(back)
	}
	return cells
}

// Snake is an ordered list of segments. Index 0 is the tail (oldest surviving
// segment), the last element is the head (highest part number).
type Snake struct {
	Segments []Segment
	parts    Sequence
}

// MoveResult reports what happened during a single Move.
type MoveResult struct {
	Split   bool
	Wrapped bool
	Pruned  int
}

func NewSnake(startPos types.Point, dir types.Direction, length int) *Snake {
	s := &Snake{parts: NewSequence(0)}
	s.Segments = []Segment{{
		Head:       startPos,
		Direction:  dir,
		Length:     length,
		PartNumber: s.parts.Next(),
	}}
	return s
}

// RestoreSnake rebuilds a snake from existing segments. The part sequence
// continues after the highest part number present.
func RestoreSnake(segments []Segment) *Snake {
	s := &Snake{Segments: append([]Segment(nil), segments...)}
	last := 0
	for _, seg := range segments {
		if seg.PartNumber > last {
			last = seg.PartNumber
		}
	}
	s.parts = NewSequence(last)
	return s
}

// Clone returns a deep copy that can be mutated independently.
func (s *Snake) Clone() *Snake {
	return &Snake{
		Segments: append([]Segment(nil), s.Segments...),
		parts:    s.parts,
	}
}

func (s *Snake) GetHead() Segment {
	return s.Segments[len(s.Segments)-1]
}

func (s *Snake) GetTail() Segment {
	return s.Segments[0]
}

func (s *Snake) head() *Segment {
	return &s.Segments[len(s.Segments)-1]
}

// Direction returns the direction the head is moving in.
func (s *Snake) Direction() types.Direction {
	return s.GetHead().Direction
}

// TotalLength sums the lengths of all segments.
func (s *Snake) TotalLength() int {
	total := 0
	for _, seg := range s.Segments {
		total += seg.Length
	}
	return total
}

// LastPartNumber returns the part number issued most recently.
func (s *Snake) LastPartNumber() int {
	return s.parts.Last()
}

// Move runs the movement half of a tick: split on a direction change, flow
// one unit from tail to head, advance the head and wrap it at the grid edge.
// The order of these steps is what makes turns render as sharp corners.
func (s *Snake) Move(commanded types.Direction, grid types.Grid) MoveResult {
	var res MoveResult

	if commanded != s.GetHead().Direction {
		s.split(commanded)
		res.Split = true
	}

	res.Pruned = s.transferTailToHead()

	head := s.head()
	head.Head = head.Head.Step(head.Direction)

	if grid.IsOutOfBounds(head.Head) {
		s.wrap(commanded, grid)
		res.Wrapped = true
	}

	return res
}

// split starts a new zero-length head at the current head cell.
func (s *Snake) split(dir types.Direction) {
	old := s.GetHead()
	s.Segments = append(s.Segments, Segment{
		Head:       old.Head,
		Direction:  dir,
		Length:     0,
		PartNumber: s.parts.Next(),
	})
}

// transferTailToHead moves one unit of length from the tail to the head.
// Zero-length tails left behind by a split or a wrap are discarded first.
func (s *Snake) transferTailToHead() int {
	if len(s.Segments) <= 1 {
		return 0
	}

	pruned := 0
	for len(s.Segments) > 1 && s.Segments[0].Length <= 0 {
		s.Segments = s.Segments[1:]
		pruned++
	}
	// Only the head is left: nothing to flow.
	if len(s.Segments) <= 1 {
		return pruned
	}

	s.Segments[0].Length--
	s.head().Length++

	if s.Segments[0].Length <= 0 {
		s.Segments = s.Segments[1:]
		pruned++
	}
	return pruned
}

// wrap freezes the current head one cell short of the edge and continues the
// body from the opposite edge with a fresh one-cell head.
func (s *Snake) wrap(dir types.Direction, grid types.Grid) {
	head := s.head()
	crossed := head.Head

	head.Length--
	head.Head = head.Head.Step(head.Direction.Opposite())

	s.Segments = append(s.Segments, Segment{
		Head:       grid.Wrap(crossed),
		Direction:  dir,
		Length:     1,
		PartNumber: s.parts.Next(),
	})
}

// Grow adds n units to the tail segment. Growth always happens at the tail
// end so the head keeps its pace.
func (s *Snake) Grow(n int) {
	if n <= 0 {
		return
	}
	s.Segments[0].Length += n
}

// Validate checks the structural invariants of the body.
func (s *Snake) Validate() error {
	if len(s.Segments) == 0 {
		return &types.InvariantViolation{Invariant: "non-empty body", Detail: "segment list is empty"}
	}
	last := 0
	for i, seg := range s.Segments {
		if seg.Length < 0 {
			return &types.InvariantViolation{
				Invariant: "non-negative length",
				Detail:    fmt.Sprintf("segment %d (part %d) has length %d", i, seg.PartNumber, seg.Length),
			}
		}
		if seg.PartNumber <= last {
			return &types.InvariantViolation{
				Invariant: "increasing part numbers",
				Detail:    fmt.Sprintf("part %d follows part %d", seg.PartNumber, last),
			}
		}
		last = seg.PartNumber
	}
	if last > s.parts.Last() {
		return &types.InvariantViolation{
			Invariant: "part sequence",
			Detail:    fmt.Sprintf("part %d was never issued (last issued %d)", last, s.parts.Last()),
		}
	}
	return nil
}
