// Package record defines the user record value stored by the rolodex.
//
// A Record has a fixed shape: a unique integer serial, a name, an age,
// and a small side map of optional named attributes (gender, occupation,
// and whatever else a caller wants to carry). The serial is the record's
// identity and never changes after construction.
package record

import "fmt"

// Well-known optional attribute keys carried in the Attrs side map.
const (
	AttrGender     = "gender"
	AttrOccupation = "occupation"
)

// Record is one user entry. Construct via New; treat as immutable after
// construction. The store replaces whole records on update rather than
// mutating them in place.
type Record struct {
	ID   int
	Name string
	Age  int

	// Attrs holds optional named attributes. Nil and empty are
	// equivalent. Keys are caller-defined; see AttrGender and
	// AttrOccupation for the conventional ones.
	Attrs map[string]string
}

// ValidationError reports a malformed record at construction time.
// Validation is the caller's responsibility; the store trusts that any
// *Record it receives was built through New.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: field %q %s", e.Field, e.Reason)
}

// New constructs a Record, validating the required fields.
// The attrs map is copied so later caller mutation cannot reach the
// constructed record.
func New(id int, name string, age int, attrs map[string]string) (*Record, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if age < 0 {
		return nil, &ValidationError{Field: "age", Reason: "must be non-negative"}
	}
	r := &Record{ID: id, Name: name, Age: age}
	if len(attrs) > 0 {
		r.Attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			r.Attrs[k] = v
		}
	}
	return r, nil
}

// Field returns the value of a named field as a string, resolving the
// built-in fields first and the Attrs side map second. The second return
// value reports whether the field exists on this record.
func (r *Record) Field(name string) (string, bool) {
	switch name {
	case "id":
		return fmt.Sprintf("%d", r.ID), true
	case "name":
		return r.Name, true
	case "age":
		return fmt.Sprintf("%d", r.Age), true
	}
	v, ok := r.Attrs[name]
	return v, ok
}

// Clone returns a deep copy. Used by the store to hand out snapshots
// that cannot alias its internal state.
func (r *Record) Clone() *Record {
	c := &Record{ID: r.ID, Name: r.Name, Age: r.Age}
	if len(r.Attrs) > 0 {
		c.Attrs = make(map[string]string, len(r.Attrs))
		for k, v := range r.Attrs {
			c.Attrs[k] = v
		}
	}
	return c
}

// Equal reports field-for-field equality, treating nil and empty Attrs
// as the same.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.ID != other.ID || r.Name != other.Name || r.Age != other.Age {
		return false
	}
	if len(r.Attrs) != len(other.Attrs) {
		return false
	}
	for k, v := range r.Attrs {
		if other.Attrs[k] != v {
			return false
		}
	}
	return true
}

// String renders the record in the one-line form used by diagnostics.
func (r *Record) String() string {
	return fmt.Sprintf("Record(id=%d, name=%q, age=%d)", r.ID, r.Name, r.Age)
}
