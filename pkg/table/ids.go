package table

// IDSource hands out instance ids for tables rendered on one page.
type IDSource interface {
	NextID() int
}

// FixedID is an explicit, caller-chosen instance id.
type FixedID int

// NextID returns the fixed id.
func (id FixedID) NextID() int {
	return int(id)
}

// Sequence is a request-scoped counter. Tables built from the same
// Sequence get distinct ids. It is not safe for concurrent use.
type Sequence struct {
	next int
}

// NewSequence returns a Sequence starting at zero.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NextID returns the next id.
func (s *Sequence) NextID() int {
	id := s.next
	s.next++
	return id
}
