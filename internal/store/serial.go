package store

import "sync"

// SerialGenerator assigns unique serial ids to new records.
// Implemented by Sequence (production) and FixedSerials (tests).
type SerialGenerator interface {
	Next() int
}

// Sequence generates strictly increasing serials starting at 1.
//
// A serial is never reissued, even after the record that carried it is
// deleted: serials are identity, not positions. (Deriving the next
// serial from the current record count would hand a deleted record's
// id to a new user.)
//
// Thread-safety: safe for concurrent use via internal mutex.
type Sequence struct {
	mu   sync.Mutex
	last int
}

// NewSequence creates a Sequence whose first Next returns 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next serial.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Observe advances the sequence past an externally assigned id, so a
// caller that mixes explicit ids with generated ones cannot collide.
func (s *Sequence) Observe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}

// FixedSerials returns predetermined serials for testing.
//
// Example:
//
//	gen := NewFixedSerials(10, 20, 30)
//	gen.Next() // 10
//	gen.Next() // 20
//	gen.Next() // 30
//	gen.Next() // panic: all serials exhausted
type FixedSerials struct {
	mu      sync.Mutex
	serials []int
	idx     int
}

// NewFixedSerials creates a generator that returns serials in order.
func NewFixedSerials(serials ...int) *FixedSerials {
	return &FixedSerials{serials: serials}
}

// Next returns the next predetermined serial. Panics when exhausted;
// a test that consumes more serials than it declared is broken.
func (f *FixedSerials) Next() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.serials) {
		panic("FixedSerials: all serials exhausted")
	}
	n := f.serials[f.idx]
	f.idx++
	return n
}
