// Package tui hosts the todo form and list in a Bubble Tea program.
//
// Every key handler runs one controller operation to completion and then
// rebuilds the list from the store.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/form"
	"github.com/Makepad-fr/tada/internal/render"
)

type focus int

const (
	focusTitle focus = iota
	focusDescription
	focusDue
	focusAssignee
	focusList

	focusCount
)

var fieldLabels = [...]string{"Title", "Description", "Due", "Assignee"}

// Options configure the program.
type Options struct {
	Location *time.Location // display zone; nil is time.Local
	FileDir  string         // file picker start directory
	Theme    string
	Logger   *log.Logger
}

type Model struct {
	ctrl *form.Controller
	loc  *time.Location
	log  *log.Logger

	inputs []textinput.Model // indexed by focus
	focus  focus
	list   list.Model

	picker  filepicker.Model
	picking bool

	keys   keyMap
	help   help.Model
	status string // last validation or picker message

	width, height int
}

// New builds the model around ctrl. The list is rendered immediately.
func New(ctrl *form.Controller, opts Options) Model {
	applyTheme(opts.Theme)
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	m := Model{
		ctrl:   ctrl,
		loc:    opts.Location,
		log:    opts.Logger,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
	}

	placeholders := [...]string{"What needs doing?", "Details (optional)", "YYYY-MM-DDTHH:MM (optional)", "Who (optional)"}
	for i := range fieldLabels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		m.inputs = append(m.inputs, ti)
	}
	m.inputs[focusTitle].Focus()

	l := list.New(nil, itemDelegate{}, m.width, m.height)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	m.list = l

	fp := filepicker.New()
	fp.CurrentDirectory = opts.FileDir
	if fp.CurrentDirectory == "" {
		fp.CurrentDirectory = "."
	}
	fp.DirAllowed = false
	fp.FileAllowed = true
	m.picker = fp

	m.refresh()
	return m
}

// Run starts the program on the terminal's alternate screen.
func Run(ctrl *form.Controller, opts Options) error {
	p := tea.NewProgram(New(ctrl, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.picker, _ = m.picker.Update(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		if m.focus == focusList && m.list.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Next):
			cmd := m.setFocus((m.focus + 1) % focusCount)
			return m, cmd
		case key.Matches(msg, m.keys.Prev):
			cmd := m.setFocus((m.focus + focusCount - 1) % focusCount)
			return m, cmd
		case key.Matches(msg, m.keys.OpenPicker):
			m.picking = true
			m.status = ""
			return m, m.picker.Init()
		case key.Matches(msg, m.keys.ClearFiles):
			m.ctrl.ClearFiles()
			return m, nil
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateForm(msg)
	}

	if m.picking {
		return m.updatePicker(msg)
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.inputs[m.focusedInput()], cmd = m.inputs[m.focusedInput()].Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		cmd := m.submit()
		return m, cmd
	case key.Matches(msg, m.keys.Cancel):
		m.ctrl.Reset()
		m.status = ""
		m.loadInputs()
		cmd := m.setFocus(focusTitle)
		return m, cmd
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var kind render.ActionKind
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		kind = render.ToggleComplete
	case key.Matches(msg, m.keys.Edit):
		kind = render.Edit
	case key.Matches(msg, m.keys.Delete):
		kind = render.Delete
	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	sel, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return m, nil
	}
	a, ok := sel.Action(kind)
	if !ok {
		return m, nil
	}
	wasEditing := m.ctrl.Editing()
	if !m.ctrl.Dispatch(a) {
		cmd := m.refresh()
		return m, cmd
	}
	switch {
	case kind == render.Edit:
		m.status = ""
		m.loadInputs()
		cmd := tea.Batch(m.refresh(), m.setFocus(focusTitle))
		return m, cmd
	case wasEditing && !m.ctrl.Editing():
		// the record under edit is gone; the controller reset the form
		m.loadInputs()
	}
	cmd := m.refresh()
	return m, cmd
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.ClosePicker) {
		m.picking = false
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.ctrl.AddFile(path)
		m.picking = false
		m.log.Debug("file selected", "path", path)
	} else if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.status = path + " cannot be attached"
	}
	return m, cmd
}

// submit pushes the inputs into the controller and runs create or save.
func (m *Model) submit() tea.Cmd {
	m.ctrl.SetFields(m.fields())
	if _, ok := m.ctrl.Submit(); !ok {
		if strings.TrimSpace(m.inputs[focusTitle].Value()) == "" {
			m.status = "Title cannot be empty"
		}
		return m.setFocus(focusTitle)
	}
	m.status = ""
	m.loadInputs()
	return tea.Batch(m.refresh(), m.setFocus(focusTitle))
}

func (m *Model) fields() form.Fields {
	return form.Fields{
		Title:       m.inputs[focusTitle].Value(),
		Description: m.inputs[focusDescription].Value(),
		Due:         m.inputs[focusDue].Value(),
		Assignee:    m.inputs[focusAssignee].Value(),
	}
}

// loadInputs copies the controller's form state into the text inputs.
func (m *Model) loadInputs() {
	f := m.ctrl.Fields()
	for i, v := range []string{f.Title, f.Description, f.Due, f.Assignee} {
		m.inputs[i].SetValue(v)
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if focus(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m Model) focusedInput() focus {
	if m.focus < focusList {
		return m.focus
	}
	return focusTitle
}

// refresh rebuilds the list items and header from the store.
func (m *Model) refresh() tea.Cmd {
	items := m.ctrl.List(m.loc)
	s := render.Summarize(items)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		"Todos",
		successStyle.Render("✔"), s.Done,
		pendingStyle.Render("•"), s.Pending,
		accentStyle.Render("Total"), s.Total,
	)
	return m.list.SetItems(toListItems(items))
}

func (m Model) View() string {
	var top string
	if m.picking {
		top = panelString(titleStyle.Render("Attach a file")+"\n"+m.picker.View(), m.width)
	} else {
		top = panelString(m.formView(), m.width)
	}
	helpView := helpStyle.Render(m.help.View(contextKeys{k: m.keys, list: m.focus == focusList, browsing: m.picking}))

	listHeight := m.height - lipgloss.Height(top) - lipgloss.Height(helpView) - 2
	m.list.SetSize(max(m.width-4, 20), max(listHeight, 5))

	return lipgloss.JoinVertical(lipgloss.Left, top, panelString(m.list.View(), m.width), helpView)
}

func (m Model) formView() string {
	header := "Add new todo"
	if m.ctrl.Editing() {
		header = "Edit todo"
	}
	lines := []string{titleStyle.Render(header)}
	for i, label := range fieldLabels {
		lines = append(lines, labelStyle.Render(label+":")+m.inputs[i].View())
	}
	lines = append(lines, labelStyle.Render("Files:")+mutedStyle.Render(m.ctrl.AttachmentsPreview()))

	p := m.ctrl.Presentation()
	button := buttonStyle.Render(p.Icon + " " + p.Label)
	if m.status != "" {
		button += "  " + errorStyle.Render(m.status)
	}
	lines = append(lines, "", button)
	return strings.Join(lines, "\n")
}
