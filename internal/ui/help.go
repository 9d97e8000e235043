package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"suggestable/internal/suggester"
)

// KeyMap holds the form-level bindings. Dropdown bindings come from the
// focused widget.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	FullHelp key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the form bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		FullHelp: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// helpKeys joins the form bindings with the focused widget's
type helpKeys struct {
	form   KeyMap
	widget suggester.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return []key.Binding{h.widget.Up, h.widget.Down, h.widget.Enter, h.form.Next, h.form.FullHelp, h.form.Quit}
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.widget.Up, h.widget.Down, h.widget.Enter, h.widget.Escape},
		{h.form.Next, h.form.Prev},
		{h.form.FullHelp, h.form.Quit},
	}
}
