// Package form bridges raw form input and item actions to the store.
package form

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/render"
	"github.com/Makepad-fr/tada/internal/store"
)

// NoFilesSelected is the attachments preview when the selection is empty.
const NoFilesSelected = "No files selected"

// Fields are the text inputs of the form.
type Fields struct {
	Title       string
	Description string
	Due         string
	Assignee    string
}

// Presentation is the label and icon of the submit control.
type Presentation struct {
	Label string
	Icon  string
}

var (
	CreatePresentation = Presentation{Label: "Add Todo", Icon: "+"}
	SavePresentation   = Presentation{Label: "Save Changes", Icon: "✎"}
)

// Controller owns the form state. The todo collection and the edit marker
// stay in the store; the controller only goes through its operations.
type Controller struct {
	store  *store.Store
	fields Fields
	files  []string
	log    *log.Logger
}

// New returns a controller driving s. A nil logger discards output.
func New(s *store.Store, l *log.Logger) *Controller {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Controller{store: s, log: l}
}

func (c *Controller) Store() *store.Store { return c.store }

func (c *Controller) Fields() Fields { return c.fields }

func (c *Controller) SetFields(f Fields) { c.fields = f }

// Files returns the selected file paths.
func (c *Controller) Files() []string { return slices.Clone(c.files) }

// SelectFiles replaces the file selection.
func (c *Controller) SelectFiles(paths ...string) {
	c.files = c.files[:0]
	for _, p := range paths {
		c.AddFile(p)
	}
}

// AddFile appends one path to the selection. Blank paths are ignored.
func (c *Controller) AddFile(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	c.files = append(c.files, path)
}

func (c *Controller) ClearFiles() { c.files = nil }

// AttachmentsPreview lists the selected file names.
func (c *Controller) AttachmentsPreview() string {
	if len(c.files) == 0 {
		return NoFilesSelected
	}
	names := make([]string, 0, len(c.files))
	for _, p := range c.files {
		names = append(names, filepath.Base(p))
	}
	return strings.Join(names, ", ")
}

// Editing reports whether the form is in an edit session.
func (c *Controller) Editing() bool {
	_, ok := c.store.Editing()
	return ok
}

func (c *Controller) Presentation() Presentation {
	if c.Editing() {
		return SavePresentation
	}
	return CreatePresentation
}

// Submit creates a record, or saves the one under edit, from the current
// form state. An empty title aborts without touching anything. On success
// the form is reset.
//
// Saving with no files selected keeps the record's attachment count.
func (c *Controller) Submit() (model.ID, bool) {
	title := strings.TrimSpace(c.fields.Title)
	if title == "" {
		c.log.Debug("submit aborted", "reason", "empty title")
		return "", false
	}
	d := model.Draft{
		Title:       title,
		Description: strings.TrimSpace(c.fields.Description),
		Due:         c.fields.Due,
		Assignee:    c.fields.Assignee,
		Attachments: len(c.files),
	}

	var (
		id model.ID
		ok bool
	)
	if editID, editing := c.store.Editing(); editing {
		if rec, found := c.store.Get(editID); found && len(c.files) == 0 {
			d.Attachments = rec.Attachments
		}
		id, ok = editID, c.store.Update(editID, d)
		c.log.Info("saved", "id", id, "ok", ok)
	} else {
		id, ok = c.store.Create(d)
		c.log.Info("added", "id", id, "ok", ok)
	}
	c.Reset()
	return id, ok
}

// StartEdit loads the record into the form. Unknown ids leave the form as
// it is.
func (c *Controller) StartEdit(id model.ID) bool {
	rec, ok := c.store.BeginEdit(id)
	if !ok {
		return false
	}
	c.fields = Fields{
		Title:       rec.Title,
		Description: rec.Description,
		Due:         rec.Due,
		Assignee:    rec.Assignee,
	}
	c.ClearFiles()
	c.log.Debug("editing", "id", id)
	return true
}

// Reset empties the form and ends any edit session.
func (c *Controller) Reset() {
	c.fields = Fields{}
	c.ClearFiles()
	c.store.CancelEdit()
}

// Dispatch routes an item action to the store and reports whether anything
// changed.
func (c *Controller) Dispatch(a render.Action) bool {
	switch a.Kind {
	case render.ToggleComplete:
		return c.store.ToggleComplete(a.ID)
	case render.Edit:
		return c.StartEdit(a.ID)
	case render.Delete:
		editID, editing := c.store.Editing()
		if !c.store.Delete(a.ID) {
			return false
		}
		if editing && editID == a.ID {
			c.Reset()
		}
		c.log.Info("removed", "id", a.ID)
		return true
	}
	c.log.Warn("unknown action", "kind", a.Kind, "id", a.ID)
	return false
}

// List renders the current collection.
func (c *Controller) List(loc *time.Location) []render.Item {
	return render.List(c.store.Todos(), loc)
}
