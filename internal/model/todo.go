package model

import "time"

// ID identifies a todo for the lifetime of the process. Never reused.
type ID string

// Todo is the domain model for a todo entry.
type Todo struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Due         string    `json:"due"` // as entered, e.g. "2025-08-01T09:00"
	Assignee    string    `json:"assignee"`
	Attachments int       `json:"attachments"`
	Completed   bool      `json:"completed"`
}

// Draft carries the user-editable fields of a Todo, as read from the form.
type Draft struct {
	Title       string
	Description string
	Due         string
	Assignee    string
	Attachments int
}

// Draft returns the editable fields of t.
func (t Todo) Draft() Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Due:         t.Due,
		Assignee:    t.Assignee,
		Attachments: t.Attachments,
	}
}

// Example is the record an interactive session starts with.
func Example(loc *time.Location) Todo {
	if loc == nil {
		loc = time.Local
	}
	return Todo{
		Title:       "Example Todo",
		Description: "Description goes here",
		CreatedAt:   time.Date(2025, 7, 1, 10, 0, 0, 0, loc),
		Due:         "2025-07-10T12:00",
		Assignee:    "John Doe",
		Attachments: 2,
	}
}
