// Package store owns the in-memory todo collection and the edit-session
// marker. Records live for the process lifetime only.
//
// Operations never report errors: a missing id or an empty title makes the
// call a no-op, reported through the boolean result.
package store

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/model"
)

// Store is not safe for concurrent use; it is driven from a single event loop.
type Store struct {
	todos   []model.Todo // newest first
	editing model.ID     // empty when no edit session is active
	issued  map[model.ID]struct{}

	now   func() time.Time
	newID func() model.ID
	log   *log.Logger
}

type Option func(*Store)

// WithClock sets the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc sets the id generator. Ids already handed out are skipped.
func WithIDFunc(f func() model.ID) Option {
	return func(s *Store) { s.newID = f }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

func New(opts ...Option) *Store {
	s := &Store{
		issued: make(map[model.ID]struct{}),
		now:    time.Now,
		newID:  func() model.ID { return model.ID(uuid.NewString()) },
		log:    log.New(io.Discard),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create inserts a new record at the front of the collection.
// Returns false, and changes nothing, when the trimmed title is empty.
func (s *Store) Create(d model.Draft) (model.ID, bool) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		s.log.Debug("create rejected", "reason", "empty title")
		return "", false
	}
	t := model.Todo{
		ID:          s.nextID(),
		Title:       title,
		Description: d.Description,
		CreatedAt:   s.now(),
		Due:         d.Due,
		Assignee:    d.Assignee,
		Attachments: max(d.Attachments, 0),
	}
	s.todos = slices.Insert(s.todos, 0, t)
	s.log.Debug("created", "id", t.ID, "title", t.Title)
	return t.ID, true
}

// Seed appends a fully specified record at the end of the collection,
// keeping its CreatedAt when set. The id is always freshly generated.
func (s *Store) Seed(t model.Todo) (model.ID, bool) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return "", false
	}
	t.ID = s.nextID()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	t.Attachments = max(t.Attachments, 0)
	s.todos = append(s.todos, t)
	s.log.Debug("seeded", "id", t.ID, "title", t.Title)
	return t.ID, true
}

// Update replaces the editable fields of the record in place. ID,
// CreatedAt, Completed and position are left alone. Missing ids and empty
// titles are no-ops.
func (s *Store) Update(id model.ID, d model.Draft) bool {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("update skipped", "id", id, "reason", "not found")
		return false
	}
	title := strings.TrimSpace(d.Title)
	if title == "" {
		s.log.Debug("update skipped", "id", id, "reason", "empty title")
		return false
	}
	t := &s.todos[i]
	t.Title = title
	t.Description = d.Description
	t.Due = d.Due
	t.Assignee = d.Assignee
	t.Attachments = max(d.Attachments, 0)
	s.log.Debug("updated", "id", id, "title", title)
	return true
}

func (s *Store) ToggleComplete(id model.ID) bool {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("toggle skipped", "id", id, "reason", "not found")
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.log.Debug("toggled", "id", id, "completed", s.todos[i].Completed)
	return true
}

// Delete removes the record, clearing the edit marker if it pointed at it.
func (s *Store) Delete(id model.ID) bool {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("delete skipped", "id", id, "reason", "not found")
		return false
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	if s.editing == id {
		s.editing = ""
	}
	s.log.Debug("deleted", "id", id)
	return true
}

// BeginEdit marks id as the record being edited. A later call replaces the
// marker. When id is unknown the marker is left as it was.
func (s *Store) BeginEdit(id model.ID) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		s.log.Debug("edit skipped", "id", id, "reason", "not found")
		return model.Todo{}, false
	}
	s.editing = id
	return s.todos[i], true
}

func (s *Store) CancelEdit() { s.editing = "" }

// Editing reports the record under edit, if any.
func (s *Store) Editing() (model.ID, bool) {
	return s.editing, s.editing != ""
}

func (s *Store) Get(id model.ID) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i], true
}

// Todos returns a copy of the collection, newest first.
func (s *Store) Todos() []model.Todo { return slices.Clone(s.todos) }

func (s *Store) Len() int { return len(s.todos) }

func (s *Store) index(id model.ID) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}

func (s *Store) nextID() model.ID {
	for {
		id := s.newID()
		if _, dup := s.issued[id]; dup || id == "" {
			continue
		}
		s.issued[id] = struct{}{}
		return id
	}
}
