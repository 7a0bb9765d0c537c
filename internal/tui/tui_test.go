package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

func newModel(t *testing.T) (Model, *form.Controller) {
	t.Helper()
	ctrl := form.New(store.New(), nil)
	m := New(ctrl, Options{Location: time.UTC, FileDir: t.TempDir()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return next.(Model), ctrl
}

func text(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
)

func send(m Model, msgs ...tea.Msg) Model {
	var tm tea.Model = m
	for _, msg := range msgs {
		tm, _ = tm.Update(msg)
	}
	return tm.(Model)
}

func TestSubmitCreatesTodo(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, text("Buy milk"), tab, tab, text("2025-08-01T09:00"), enter)

	require.Equal(t, 1, ctrl.Store().Len())
	rec := ctrl.Store().Todos()[0]
	assert.Equal(t, "Buy milk", rec.Title)
	assert.Equal(t, "2025-08-01T09:00", rec.Due)

	for _, in := range m.inputs {
		assert.Empty(t, in.Value())
	}
	assert.Equal(t, focusTitle, m.focus)

	view := m.View()
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "2025-08-01 09:00")
	assert.Contains(t, view, "0 attachments")
	assert.Contains(t, view, form.CreatePresentation.Label)
}

func TestSubmitEmptyTitleShowsError(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, text("   "), enter)
	assert.Equal(t, 0, ctrl.Store().Len())
	assert.Contains(t, m.View(), "Title cannot be empty")
}

func TestNewestFirst(t *testing.T) {
	m, ctrl := newModel(t)
	send(m, text("A"), enter, text("B"), enter)
	todos := ctrl.Store().Todos()
	require.Len(t, todos, 2)
	assert.Equal(t, "B", todos[0].Title)
	assert.Equal(t, "A", todos[1].Title)
}

func TestFocusCycles(t *testing.T) {
	m, _ := newModel(t)
	m = send(m, tab, tab, tab, tab)
	assert.Equal(t, focusList, m.focus)
	m = send(m, tab)
	assert.Equal(t, focusTitle, m.focus)
	m = send(m, shiftTab)
	assert.Equal(t, focusList, m.focus)
}

func TestToggleFromList(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, text("A"), enter, shiftTab, text("x"))
	assert.True(t, ctrl.Store().Todos()[0].Completed)
	send(m, text("x"))
	assert.False(t, ctrl.Store().Todos()[0].Completed)
}

func TestEditFromListKeepsAttachments(t *testing.T) {
	m, ctrl := newModel(t)
	ctrl.SelectFiles("one.pdf")
	m = send(m, text("A"), enter, shiftTab, text("e"))

	require.True(t, ctrl.Editing())
	assert.Equal(t, focusTitle, m.focus)
	assert.Equal(t, "A", m.inputs[focusTitle].Value())
	assert.Contains(t, m.View(), form.SavePresentation.Label)

	m = send(m, text("2"), enter)
	rec := ctrl.Store().Todos()[0]
	assert.Equal(t, "A2", rec.Title)
	assert.Equal(t, 1, rec.Attachments)
	assert.False(t, ctrl.Editing())
	assert.Contains(t, m.View(), "1 attachment")
}

func TestEscCancelsEdit(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, text("A"), enter, shiftTab, text("e"), text(" changed"), esc)
	assert.False(t, ctrl.Editing())
	assert.Empty(t, m.inputs[focusTitle].Value())
	assert.Equal(t, "A", ctrl.Store().Todos()[0].Title)
}

func TestDeleteFromList(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, text("A"), enter, shiftTab, text("d"))
	assert.Equal(t, 0, ctrl.Store().Len())
	assert.NotContains(t, m.View(), "Created:")

	// nothing selected: keys are harmless
	send(m, text("x"), text("e"), text("d"))
	assert.Equal(t, 0, ctrl.Store().Len())
}

func TestDeleteEditedRecordResetsInputs(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, text("A"), enter, shiftTab, text("e"), shiftTab, text("d"))
	assert.False(t, ctrl.Editing())
	assert.Empty(t, m.inputs[focusTitle].Value())
	assert.Equal(t, 0, ctrl.Store().Len())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q types into the form but quits from the list
	next, _ := m.Update(text("q"))
	assert.Equal(t, "q", next.(Model).inputs[focusTitle].Value())

	m = send(m, shiftTab)
	_, cmd = m.Update(text("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFilePickerToggleAndClear(t *testing.T) {
	m, ctrl := newModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.True(t, m.picking)
	assert.Contains(t, m.View(), "Attach a file")

	m = send(m, esc)
	assert.False(t, m.picking)

	ctrl.SelectFiles("a.pdf", "b.pdf")
	assert.Contains(t, m.View(), "a.pdf, b.pdf")
	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Contains(t, m.View(), form.NoFilesSelected)
}

func TestInitialListShowsSeed(t *testing.T) {
	ctrl := form.New(store.New(), nil)
	ctrl.Store().Seed(model.Example(time.UTC))
	m := New(ctrl, Options{Location: time.UTC})
	view := m.View()
	assert.Contains(t, view, "Example Todo")
	assert.Contains(t, view, "@John Doe")
	assert.Contains(t, view, "2 attachments")
}
