// Package render projects the todo collection into a display list.
//
// List is a pure function of its inputs: it never touches the store or the
// screen. Committing the result to a terminal is done by the tui and ui
// packages.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/tada/internal/model"
)

const (
	NoCreatedDate = "N/A"
	NoDueDate     = "No due date"
)

// Item is one displayed todo. All text is sanitized for the terminal.
type Item struct {
	ID          model.ID `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Created     string   `json:"created"`
	Due         string   `json:"due"`
	Assignee    string   `json:"assignee,omitempty"`
	Attachments string   `json:"attachments"`
	Completed   bool     `json:"completed"`
	Actions     []Action `json:"actions"`
}

// HasAssignee reports whether the assignee badge should be shown.
func (it Item) HasAssignee() bool { return it.Assignee != "" }

// Action returns the item's affordance of the given kind.
func (it Item) Action(k ActionKind) (Action, bool) {
	for _, a := range it.Actions {
		if a.Kind == k {
			return a, true
		}
	}
	return Action{}, false
}

// List rebuilds the display list from todos, in collection order.
// Dates are shown in loc; nil means time.Local.
func List(todos []model.Todo, loc *time.Location) []Item {
	if loc == nil {
		loc = time.Local
	}
	out := make([]Item, 0, len(todos))
	for _, t := range todos {
		out = append(out, project(t, loc))
	}
	return out
}

func project(t model.Todo, loc *time.Location) Item {
	toggle := "Complete"
	if t.Completed {
		toggle = "Reopen"
	}
	return Item{
		ID:          t.ID,
		Title:       Sanitize(t.Title),
		Description: Sanitize(t.Description),
		Created:     FormatCreated(t.CreatedAt, loc),
		Due:         FormatDue(t.Due, loc),
		Assignee:    Sanitize(strings.TrimSpace(t.Assignee)),
		Attachments: AttachmentsLabel(t.Attachments),
		Completed:   t.Completed,
		Actions: []Action{
			{Kind: ToggleComplete, ID: t.ID, Label: toggle},
			{Kind: Edit, ID: t.ID, Label: "Edit"},
			{Kind: Delete, ID: t.ID, Label: "Delete"},
		},
	}
}

// Sanitize makes s inert on a terminal: escape sequences are dropped and
// every remaining control character becomes a space.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, ansi.Strip(s))
}

// FormatCreated renders a creation timestamp as YYYY-MM-DD.
func FormatCreated(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return NoCreatedDate
	}
	return t.In(loc).Format("2006-01-02")
}

// FormatDue renders a due value as YYYY-MM-DD HH:MM in loc. Values that do
// not parse are shown as entered.
func FormatDue(raw string, loc *time.Location) string {
	if strings.TrimSpace(raw) == "" {
		return NoDueDate
	}
	t, ok := ParseDue(raw, loc)
	if !ok {
		return Sanitize(raw)
	}
	return t.Format("2006-01-02 15:04")
}

var (
	zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts = []string{
		"2006-01-02T15:04",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// ParseDue parses a due value. Values without a zone are read as wall
// clock time in loc, the way a datetime-local field is.
func ParseDue(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func AttachmentsLabel(n int) string {
	if n == 1 {
		return "1 attachment"
	}
	return fmt.Sprintf("%d attachments", n)
}

// Summary holds the header counts.
type Summary struct {
	Done    int `json:"done"`
	Pending int `json:"pending"`
	Total   int `json:"total"`
}

func Summarize(items []Item) Summary {
	var s Summary
	for _, it := range items {
		if it.Completed {
			s.Done++
		} else {
			s.Pending++
		}
	}
	s.Total = len(items)
	return s
}
