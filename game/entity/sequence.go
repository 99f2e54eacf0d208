package entity

// Sequence hands out strictly increasing identifiers. Values are never
// reused, even after the entity that carried them is gone.
type Sequence struct {
	last int
}

// NewSequence starts a sequence whose first Next() returns last+1.
func NewSequence(last int) Sequence {
	return Sequence{last: last}
}

func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// Last returns the most recently issued value.
func (s *Sequence) Last() int {
	return s.last
}
