package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

var fixedNow = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	return New(
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() model.ID {
			n++
			return model.ID(fmt.Sprintf("id-%d", n))
		}),
	)
}

func titles(s *Store) []string {
	var out []string
	for _, t := range s.Todos() {
		out = append(out, t.Title)
	}
	return out
}

func TestCreateOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	seen := map[model.ID]bool{}
	for _, title := range []string{"A", "B", "C", "D"} {
		id, ok := s.Create(model.Draft{Title: title})
		require.True(t, ok)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []string{"D", "C", "B", "A"}, titles(s))
}

func TestCreateStampsFields(t *testing.T) {
	s := newTestStore(t)
	id, ok := s.Create(model.Draft{
		Title:       "  Buy milk  ",
		Description: "two litres",
		Due:         "2025-08-01T09:00",
		Assignee:    "Sam",
		Attachments: 2,
	})
	require.True(t, ok)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "two litres", got.Description)
	assert.Equal(t, "2025-08-01T09:00", got.Due)
	assert.Equal(t, "Sam", got.Assignee)
	assert.Equal(t, 2, got.Attachments)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.False(t, got.Completed)
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	for _, title := range []string{"", "   ", "\t\n"} {
		id, ok := s.Create(model.Draft{Title: title, Description: "x"})
		assert.False(t, ok)
		assert.Empty(t, id)
	}
	assert.Equal(t, 0, s.Len())
}

func TestCreateSkipsIssuedIDs(t *testing.T) {
	ids := []model.ID{"x", "x", "", "y"}
	s := New(WithIDFunc(func() model.ID {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	a, _ := s.Create(model.Draft{Title: "A"})
	require.True(t, s.Delete(a))
	b, _ := s.Create(model.Draft{Title: "B"})
	assert.Equal(t, model.ID("x"), a)
	assert.Equal(t, model.ID("y"), b)
}

func TestUpdateInPlace(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create(model.Draft{Title: "A", Attachments: 1})
	s.Create(model.Draft{Title: "B"})
	require.True(t, s.ToggleComplete(a))

	ok := s.Update(a, model.Draft{
		Title:       "A2",
		Description: "d",
		Due:         "2025-09-01T08:30",
		Assignee:    "Kim",
		Attachments: 3,
	})
	require.True(t, ok)

	got, _ := s.Get(a)
	assert.Equal(t, a, got.ID)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, "d", got.Description)
	assert.Equal(t, "2025-09-01T08:30", got.Due)
	assert.Equal(t, "Kim", got.Assignee)
	assert.Equal(t, 3, got.Attachments)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.True(t, got.Completed, "update must not touch completed")
	assert.Equal(t, []string{"B", "A2"}, titles(s))
}

func TestUpdateNoOps(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})
	before := s.Todos()

	assert.False(t, s.Update("missing", model.Draft{Title: "X"}))
	assert.False(t, s.Update(a, model.Draft{Title: "  "}))
	assert.False(t, s.Update("", model.Draft{Title: "X"}))
	assert.Equal(t, before, s.Todos())
}

func TestToggleCompleteIsInvolution(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})

	require.True(t, s.ToggleComplete(a))
	got, _ := s.Get(a)
	assert.True(t, got.Completed)

	require.True(t, s.ToggleComplete(a))
	got, _ = s.Get(a)
	assert.False(t, got.Completed)

	assert.False(t, s.ToggleComplete("missing"))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})
	b, _ := s.Create(model.Draft{Title: "B"})
	s.Create(model.Draft{Title: "C"})

	require.True(t, s.Delete(b))
	assert.Equal(t, []string{"C", "A"}, titles(s))

	assert.False(t, s.Delete(b))
	assert.False(t, s.Delete("missing"))
	assert.Equal(t, 2, s.Len())

	_, ok := s.Get(a)
	assert.True(t, ok)
}

func TestDeleteClearsEditMarker(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})
	b, _ := s.Create(model.Draft{Title: "B"})

	_, ok := s.BeginEdit(a)
	require.True(t, ok)

	s.Delete(b)
	id, editing := s.Editing()
	assert.True(t, editing, "deleting another record keeps the marker")
	assert.Equal(t, a, id)

	s.Delete(a)
	_, editing = s.Editing()
	assert.False(t, editing)
}

func TestBeginEditLastWins(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Create(model.Draft{Title: "A"})
	b, _ := s.Create(model.Draft{Title: "B"})

	rec, ok := s.BeginEdit(a)
	require.True(t, ok)
	assert.Equal(t, "A", rec.Title)

	s.BeginEdit(b)
	id, _ := s.Editing()
	assert.Equal(t, b, id)

	_, ok = s.BeginEdit("missing")
	assert.False(t, ok)
	id, _ = s.Editing()
	assert.Equal(t, b, id, "unknown id leaves the marker unchanged")

	s.CancelEdit()
	_, editing := s.Editing()
	assert.False(t, editing)
}

func TestSeedAppendsAndKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	s.Create(model.Draft{Title: "A"})
	created := time.Date(2025, 7, 1, 10, 0, 0, 0, time.Local)

	id, ok := s.Seed(model.Todo{ID: "ignored", Title: "Example", CreatedAt: created, Attachments: -4})
	require.True(t, ok)
	assert.NotEqual(t, model.ID("ignored"), id)

	all := s.Todos()
	require.Len(t, all, 2)
	assert.Equal(t, "Example", all[1].Title)
	assert.Equal(t, created, all[1].CreatedAt)
	assert.Equal(t, 0, all[1].Attachments)

	_, ok = s.Seed(model.Todo{Title: " "})
	assert.False(t, ok)
}

func TestTodosReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	s.Create(model.Draft{Title: "A"})
	all := s.Todos()
	all[0].Title = "mutated"
	assert.Equal(t, []string{"A"}, titles(s))
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s := New()
	seen := map[model.ID]bool{}
	for i := 0; i < 200; i++ {
		id, ok := s.Create(model.Draft{Title: "t"})
		require.True(t, ok)
		require.False(t, seen[id])
		seen[id] = true
	}
}
