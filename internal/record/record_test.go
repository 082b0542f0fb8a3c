package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Valid(t *testing.T) {
	r, err := New(1, "Alice", 30, map[string]string{AttrOccupation: "engineer"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.ID)
	assert.Equal(t, "Alice", r.Name)
	assert.Equal(t, 30, r.Age)
	assert.Equal(t, "engineer", r.Attrs[AttrOccupation])
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New(1, "", 30, nil)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Field)
}

func TestNew_NegativeAge(t *testing.T) {
	_, err := New(1, "Alice", -1, nil)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "age", verr.Field)
}

func TestNew_ZeroAgeAllowed(t *testing.T) {
	r, err := New(1, "Newborn", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Age)
}

func TestNew_CopiesAttrs(t *testing.T) {
	attrs := map[string]string{AttrGender: "female"}
	r, err := New(1, "Alice", 30, attrs)
	require.NoError(t, err)

	attrs[AttrGender] = "mutated"
	assert.Equal(t, "female", r.Attrs[AttrGender])
}

func TestField(t *testing.T) {
	r, err := New(7, "Bob", 25, map[string]string{AttrOccupation: "chef"})
	require.NoError(t, err)

	tests := []struct {
		field string
		want  string
		ok    bool
	}{
		{"id", "7", true},
		{"name", "Bob", true},
		{"age", "25", true},
		{"occupation", "chef", true},
		{"gender", "", false},
		{"nope", "", false},
	}
	for _, tt := range tests {
		got, ok := r.Field(tt.field)
		assert.Equal(t, tt.ok, ok, "field %q presence", tt.field)
		assert.Equal(t, tt.want, got, "field %q value", tt.field)
	}
}

func TestClone_Independent(t *testing.T) {
	r, err := New(1, "Alice", 30, map[string]string{AttrGender: "female"})
	require.NoError(t, err)

	c := r.Clone()
	require.True(t, r.Equal(c))

	c.Attrs[AttrGender] = "mutated"
	assert.Equal(t, "female", r.Attrs[AttrGender], "clone must not alias attrs")
}

func TestEqual(t *testing.T) {
	a, _ := New(1, "Alice", 30, nil)
	b, _ := New(1, "Alice", 30, map[string]string{})
	c, _ := New(1, "Alice", 31, nil)

	assert.True(t, a.Equal(b), "nil and empty attrs are equivalent")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}
