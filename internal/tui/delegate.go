package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/render"
)

// listItem adapts render.Item to bubbles/list.Item.
type listItem struct {
	render.Item
}

func (i listItem) FilterValue() string { return i.Title }

func toListItems(items []render.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{it})
	}
	return out
}

var actionKeys = map[render.ActionKind]string{
	render.ToggleComplete: "space",
	render.Edit:           "e",
	render.Delete:         "d",
}

// itemDelegate draws a todo as three lines: title, description, badges.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 3 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	selected := index == m.Index()

	box := mutedStyle.Render(boxUnchecked)
	title := it.Title
	if it.Completed {
		box = successStyle.Render(boxChecked)
		title = doneStyle.Render(title)
	}
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	head := fmt.Sprintf("%s%s %s  %s", prefix, box, title, mutedStyle.Render("Created: "+it.Created))
	if selected {
		var acts []string
		for _, a := range it.Actions {
			acts = append(acts, accentStyle.Render(actionKeys[a.Kind])+" "+a.Label)
		}
		head += "  " + helpStyle.Render("[") + strings.Join(acts, helpStyle.Render(" · ")) + helpStyle.Render("]")
	}

	desc := "    " + mutedStyle.Render(it.Description)

	badges := []string{badgeStyle.Render("Due: " + it.Due)}
	if it.HasAssignee() {
		badges = append(badges, assignedStyle.Render("@"+it.Assignee))
	}
	badges = append(badges, badgeStyle.Render(it.Attachments))
	meta := "    " + strings.Join(badges, " ")

	fmt.Fprint(w, strings.Join([]string{head, desc, meta}, "\n"))
}
