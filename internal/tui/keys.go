package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	OpenPicker  key.Binding
	ClosePicker key.Binding
	ClearFiles  key.Binding
	Toggle      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "reset form")),
		OpenPicker:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "attach file")),
		ClosePicker: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close picker")),
		ClearFiles:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear files")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "complete")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// contextKeys picks the bindings to advertise for the focused area.
type contextKeys struct {
	k        keyMap
	list     bool
	browsing bool
}

func (c contextKeys) ShortHelp() []key.Binding {
	switch {
	case c.browsing:
		return []key.Binding{c.k.ClosePicker, c.k.ForceQuit}
	case c.list:
		return []key.Binding{c.k.Toggle, c.k.Edit, c.k.Delete, c.k.Next, c.k.Quit}
	}
	return []key.Binding{c.k.Submit, c.k.Next, c.k.Cancel, c.k.OpenPicker, c.k.ClearFiles, c.k.ForceQuit}
}

func (c contextKeys) FullHelp() [][]key.Binding { return [][]key.Binding{c.ShortHelp()} }
