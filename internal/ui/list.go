package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/Makepad-fr/tada/internal/render"
)

const maxTitle = 80

var (
	faint  = color.New(color.Faint)
	strike = color.New(color.Faint, color.CrossedOut)
)

// Header is the counts line shown above the list.
func Header(s render.Summary) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Todos"),
		C(t.Success, symCheck), s.Done,
		C(t.Pending, t.SymPending), s.Pending,
		C(t.Accent, "Total"), s.Total,
	)
}

// ListLines builds the plain-output panel body: header, progress bar and
// the items, flat or grouped by pending/done.
func ListLines(items []render.Item, group bool, preview string) []string {
	s := render.Summarize(items)
	lines := []string{
		Header(s),
		C(Current().Muted, ProgressBar(s.Done, s.Total, 28)),
		"",
	}
	if group {
		lines = append(lines, GroupLines(items)...)
	} else {
		lines = append(lines, FlatLines(items)...)
	}
	if preview != "" {
		lines = append(lines, "", C(Current().Muted, "Attachments: "+preview))
	}
	return lines
}

// ItemLines renders one item; n is its 1-based position.
func ItemLines(n int, it render.Item) []string {
	t := Current()
	box, boxColor := t.BoxUnchecked, t.Muted
	title := truncate(it.Title, maxTitle)
	if it.Completed {
		box, boxColor = t.BoxChecked, t.Success
		title = C(strike, title)
	}
	indent := "    "
	lines := []string{fmt.Sprintf("%s %s %s  %s",
		C(faint, fmt.Sprintf("%2d.", n)),
		C(boxColor, box),
		title,
		C(t.Muted, "Created: "+it.Created),
	)}
	if it.Description != "" {
		lines = append(lines, indent+C(t.Muted, truncate(it.Description, maxTitle)))
	}

	badges := []string{"Due: " + it.Due}
	if it.HasAssignee() {
		badges = append(badges, C(t.Accent, "@"+it.Assignee))
	}
	badges = append(badges, it.Attachments)
	lines = append(lines, indent+strings.Join(badges, "  "))
	return lines
}

func FlatLines(items []render.Item) []string {
	if len(items) == 0 {
		return []string{C(Current().Muted, "no items")}
	}
	var out []string
	for i, it := range items {
		out = append(out, ItemLines(i+1, it)...)
	}
	return out
}

func GroupLines(items []render.Item) []string {
	var pend, done []render.Item
	for _, it := range items {
		if it.Completed {
			done = append(done, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(name string, items []render.Item) []string {
		lines := []string{C(Current().Accent, name)}
		if len(items) == 0 {
			return append(lines, C(Current().Muted, "(none)"))
		}
		return append(lines, FlatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
