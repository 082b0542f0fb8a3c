package store

import (
	"sync"

	"github.com/roach88/rolodex/internal/record"
)

// Store owns the record collection and the derived id index.
//
// Construct with New and pass the instance to whatever composes the
// application; there is no package-level shared store. All data lives
// for the life of the process.
//
// Thread-safety model: every operation takes the single mutex across
// both structures, so add/update/delete are each seen as atomic by all
// observers even when a Store is shared between goroutines.
type Store struct {
	mu      sync.Mutex
	records []*record.Record
	index   map[int]*record.Record

	// scans counts records visited by linear searches. Lookup paths
	// that go through the index never touch it. Test instrumentation.
	scans int
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		index: make(map[int]*record.Record),
	}
}

// Add appends a record to the collection and inserts it into the index.
// Fails with a DUPLICATE_KEY error if the id is already present, in
// which case neither structure is modified.
func (s *Store) Add(r *record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[r.ID]; exists {
		return newDuplicateKeyError(r.ID)
	}

	stored := r.Clone()
	s.records = append(s.records, stored)
	s.index[r.ID] = stored
	return nil
}

// Find returns the record with the given id via a single index lookup.
// The boolean reports presence; a missing id is a normal outcome, not
// an error. The returned record is a copy.
func (s *Store) Find(id int) (*record.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// FindByAttribute returns every record whose named field equals value,
// in insertion order. Matching is unicode-normalized and
// case-insensitive (see match.go). This scan is intentionally linear:
// the id index is the only index maintained. An empty result is not an
// error.
func (s *Store) FindByAttribute(field, value string) []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*record.Record
	want := foldKey(value)
	for _, r := range s.records {
		s.scans++
		got, ok := r.Field(field)
		if ok && foldKey(got) == want {
			out = append(out, r.Clone())
		}
	}
	return out
}

// Update replaces the record with the given id by a new record that
// combines its unchanged fields with changes, and reindexes it in the
// same step. The record keeps its position in the collection.
//
// Fails with INVALID_OPERATION if changes tries to set the id, with
// NOT_FOUND if no record has the id, and with a validation error if
// changes would produce a malformed record. On any failure neither
// structure is modified.
func (s *Store) Update(id int, changes Changes) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if changes.ID != nil {
		return newInvalidOperationError(id)
	}

	old, ok := s.index[id]
	if !ok {
		return newNotFoundError(id)
	}

	updated, err := changes.apply(old)
	if err != nil {
		return err
	}

	// Single write-and-reindex step: slice slot and index entry point
	// at the same new record before the lock is released.
	for i, r := range s.records {
		if r.ID == id {
			s.records[i] = updated
			break
		}
	}
	s.index[id] = updated
	return nil
}

// Delete removes the record with the given id from the collection and
// the index together, preserving the order of the remaining records.
// Fails with NOT_FOUND if no record has the id.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return newNotFoundError(id)
	}

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	return nil
}

// List returns a snapshot of all records in insertion order. Mutating
// the returned slice or its records does not affect the store.
func (s *Store) List() []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*record.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// scanCount returns the number of records visited by linear searches
// since construction. White-box test accessor.
func (s *Store) scanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans
}
