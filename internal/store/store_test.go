package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rolodex/internal/record"
)

func mustRecord(t *testing.T, id int, name string, age int, attrs map[string]string) *record.Record {
	t.Helper()
	r, err := record.New(id, name, age, attrs)
	require.NoError(t, err)
	return r
}

// requireConsistent asserts the index invariant: index keys are exactly
// the ids in records, and each entry points at the same stored record.
func requireConsistent(t *testing.T, s *Store) {
	t.Helper()
	require.Equal(t, len(s.records), len(s.index), "records and index must be the same size")
	for _, r := range s.records {
		indexed, ok := s.index[r.ID]
		require.True(t, ok, "record %d missing from index", r.ID)
		require.Same(t, r, indexed, "index entry for %d must be the stored record", r.ID)
	}
}

func TestAdd_ThenFind(t *testing.T) {
	s := New()
	alice := mustRecord(t, 1, "Alice", 30, nil)

	require.NoError(t, s.Add(alice))
	requireConsistent(t, s)

	got, ok := s.Find(1)
	require.True(t, ok)
	assert.True(t, alice.Equal(got))
}

func TestAdd_DuplicateLeavesStoreUnchanged(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))

	err := s.Add(mustRecord(t, 1, "Impostor", 99, nil))
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))
	requireConsistent(t, s)

	// No partial effect: still one record, original contents intact.
	assert.Equal(t, 1, s.Len())
	got, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Name)
}

func TestFind_Missing(t *testing.T) {
	s := New()
	got, ok := s.Find(42)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestFind_UsesIndexNotScan(t *testing.T) {
	s := New()
	for i := 1; i <= 100; i++ {
		require.NoError(t, s.Add(mustRecord(t, i, "User", 20, nil)))
	}

	_, ok := s.Find(100)
	require.True(t, ok)
	_, ok = s.Find(7)
	require.True(t, ok)
	_, ok = s.Find(9999)
	require.False(t, ok)

	assert.Equal(t, 0, s.scanCount(), "Find must not visit records linearly")
}

func TestFind_ReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, map[string]string{record.AttrGender: "female"})))

	got, ok := s.Find(1)
	require.True(t, ok)
	got.Name = "Mutated"
	got.Attrs[record.AttrGender] = "mutated"

	again, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Alice", again.Name)
	assert.Equal(t, "female", again.Attrs[record.AttrGender])
}

func TestUpdate_ChangesRecordsAndIndexTogether(t *testing.T) {
	// Regression guard for the silent-update class of defect: after
	// Update, the new value must be observable through both the
	// listing and the index lookup.
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))

	age := 31
	require.NoError(t, s.Update(1, Changes{Age: &age}))
	requireConsistent(t, s)

	got, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, 31, got.Age)

	listed := s.List()
	require.Len(t, listed, 1)
	assert.Equal(t, 31, listed[0].Age)
}

func TestUpdate_PreservesPositionAndOtherFields(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, map[string]string{record.AttrOccupation: "engineer"})))
	require.NoError(t, s.Add(mustRecord(t, 2, "Bob", 25, nil)))

	name := "Alicia"
	require.NoError(t, s.Update(1, Changes{Name: &name}))

	listed := s.List()
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].ID, "updated record keeps its position")
	assert.Equal(t, "Alicia", listed[0].Name)
	assert.Equal(t, 30, listed[0].Age, "unchanged fields carry over")
	assert.Equal(t, "engineer", listed[0].Attrs[record.AttrOccupation])
}

func TestUpdate_MissingID(t *testing.T) {
	s := New()
	age := 40
	err := s.Update(7, Changes{Age: &age})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestUpdate_RejectsIDChange(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))

	newID := 2
	err := s.Update(1, Changes{ID: &newID})
	require.Error(t, err)
	assert.True(t, IsInvalidOperation(err))
	requireConsistent(t, s)

	got, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, 30, got.Age, "failed update must not touch the record")
}

func TestUpdate_InvalidChangeLeavesStoreUnchanged(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))

	bad := -5
	err := s.Update(1, Changes{Age: &bad})
	require.Error(t, err)

	var verr *record.ValidationError
	assert.ErrorAs(t, err, &verr)
	requireConsistent(t, s)

	got, _ := s.Find(1)
	assert.Equal(t, 30, got.Age)
}

func TestUpdate_MergesAttrs(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, map[string]string{
		record.AttrGender:     "female",
		record.AttrOccupation: "engineer",
	})))

	require.NoError(t, s.Update(1, Changes{Attrs: map[string]string{record.AttrOccupation: "manager"}}))

	got, _ := s.Find(1)
	assert.Equal(t, "manager", got.Attrs[record.AttrOccupation])
	assert.Equal(t, "female", got.Attrs[record.AttrGender], "untouched attrs survive")
}

func TestDelete(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))
	require.NoError(t, s.Add(mustRecord(t, 2, "Bob", 25, nil)))
	require.NoError(t, s.Add(mustRecord(t, 3, "Cara", 35, nil)))

	require.NoError(t, s.Delete(2))
	requireConsistent(t, s)

	_, ok := s.Find(2)
	assert.False(t, ok)

	listed := s.List()
	require.Len(t, listed, 2)
	assert.Equal(t, 1, listed[0].ID, "remaining order preserved")
	assert.Equal(t, 3, listed[1].ID)
}

func TestDelete_Missing(t *testing.T) {
	s := New()
	err := s.Delete(9)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestFindByAttribute_InsertionOrder(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))
	require.NoError(t, s.Add(mustRecord(t, 2, "Bob", 25, nil)))
	require.NoError(t, s.Add(mustRecord(t, 3, "Cara", 30, nil)))

	got := s.FindByAttribute("age", "30")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestFindByAttribute_CaseInsensitive(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, map[string]string{record.AttrOccupation: "Engineer"})))

	got := s.FindByAttribute("occupation", "engineer")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	got = s.FindByAttribute("name", "ALICE")
	require.Len(t, got, 1)
}

func TestFindByAttribute_NoMatches(t *testing.T) {
	s := New()
	assert.Empty(t, s.FindByAttribute("age", "30"), "empty store yields empty sequence")

	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))
	assert.Empty(t, s.FindByAttribute("age", "99"))
	assert.Empty(t, s.FindByAttribute("no_such_field", "x"))
}

func TestList_Snapshot(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))

	listed := s.List()
	listed[0].Name = "Mutated"

	again := s.List()
	assert.Equal(t, "Alice", again[0].Name)
}

// TestIndexConsistency_OperationSequences drives mixed operation
// sequences and checks the invariant after every step.
func TestIndexConsistency_OperationSequences(t *testing.T) {
	s := New()

	for i := 1; i <= 10; i++ {
		require.NoError(t, s.Add(mustRecord(t, i, "User", 20+i, nil)))
		requireConsistent(t, s)
	}
	for _, id := range []int{2, 4, 6, 8, 10} {
		require.NoError(t, s.Delete(id))
		requireConsistent(t, s)
	}
	for _, id := range []int{1, 3, 5} {
		age := 50
		require.NoError(t, s.Update(id, Changes{Age: &age}))
		requireConsistent(t, s)
	}

	// Re-adding a deleted id is allowed: the id is free again.
	require.NoError(t, s.Add(mustRecord(t, 2, "Back", 40, nil)))
	requireConsistent(t, s)
	assert.Equal(t, 6, s.Len())
}

// TestEndToEnd mirrors the canonical add/update/delete walkthrough.
func TestEndToEnd(t *testing.T) {
	s := New()

	require.NoError(t, s.Add(mustRecord(t, 1, "Alice", 30, nil)))
	require.NoError(t, s.Add(mustRecord(t, 2, "Bob", 25, nil)))

	age := 31
	require.NoError(t, s.Update(1, Changes{Age: &age}))

	got, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, 31, got.Age)

	require.NoError(t, s.Delete(2))

	listed := s.List()
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].ID)

	_, ok = s.Find(2)
	assert.False(t, ok)
	requireConsistent(t, s)
}
