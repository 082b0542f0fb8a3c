package store

import (
	"strconv"

	"github.com/roach88/rolodex/internal/record"
)

// Changes describes a partial update to a record. Nil pointers mean
// "leave unchanged"; Attrs entries are merged over the existing side
// map. ID is present only so an attempted identity change can be
// rejected explicitly — setting it always fails the update.
type Changes struct {
	ID    *int
	Name  *string
	Age   *int
	Attrs map[string]string
}

// IsZero reports whether the change set would touch nothing.
func (c Changes) IsZero() bool {
	return c.ID == nil && c.Name == nil && c.Age == nil && len(c.Attrs) == 0
}

// apply builds the replacement record from old plus the change set.
// Construction goes through record.New so a change that would produce
// a malformed record (empty name, negative age) fails validation
// before anything is written.
func (c Changes) apply(old *record.Record) (*record.Record, error) {
	name := old.Name
	if c.Name != nil {
		name = *c.Name
	}
	age := old.Age
	if c.Age != nil {
		age = *c.Age
	}

	attrs := make(map[string]string, len(old.Attrs)+len(c.Attrs))
	for k, v := range old.Attrs {
		attrs[k] = v
	}
	for k, v := range c.Attrs {
		attrs[k] = v
	}

	return record.New(old.ID, name, age, attrs)
}

// ParseChanges converts a field→value map (as collected by a
// presentation layer) into a typed change set. The "id" key is carried
// through as an attempted identity change so Update can reject it;
// "age" must parse as an integer.
func ParseChanges(fields map[string]string) (Changes, error) {
	var c Changes
	for k, v := range fields {
		switch k {
		case "id":
			id, err := strconv.Atoi(v)
			if err != nil {
				return Changes{}, &record.ValidationError{Field: "id", Reason: "must be an integer"}
			}
			c.ID = &id
		case "name":
			name := v
			c.Name = &name
		case "age":
			age, err := strconv.Atoi(v)
			if err != nil {
				return Changes{}, &record.ValidationError{Field: "age", Reason: "must be an integer"}
			}
			c.Age = &age
		default:
			if c.Attrs == nil {
				c.Attrs = make(map[string]string)
			}
			c.Attrs[k] = v
		}
	}
	return c, nil
}
