package page

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"suggestable/internal/domain"
)

// Input is a text field on the page. The widget reads and writes its value
// but does not own it.
type Input struct {
	ID    string
	Label string
	Data  map[string]string // data attributes, e.g. the endpoint url
	Attrs map[string]string
	Style lipgloss.Style

	TextInput textinput.Model
}

// NewInput creates an empty, unfocused input
func NewInput(id, label string) *Input {
	ti := textinput.New()
	ti.Prompt = ""
	return &Input{
		ID:        id,
		Label:     label,
		Data:      map[string]string{},
		Attrs:     map[string]string{},
		Style:     lipgloss.NewStyle(),
		TextInput: ti,
	}
}

func (i *Input) ElementID() string { return i.ID }

// Value returns the current text
func (i *Input) Value() string {
	return i.TextInput.Value()
}

// SetValue replaces the text and moves the cursor to the end
func (i *Input) SetValue(s string) {
	i.TextInput.SetValue(s)
	i.TextInput.CursorEnd()
}

func (i *Input) View() string {
	content := i.TextInput.View()
	if i.Label != "" {
		content = i.Label + " " + content
	}
	return i.Style.Render(content)
}

// OuterHeight is the input's rendered height including its frame
func (i *Input) OuterHeight() int {
	return lipgloss.Height(i.View())
}

// ContainerRenderer draws a container's rows and maps lines back to rows
type ContainerRenderer interface {
	Render(c *Container) string
	// RowAt returns the row index drawn on line, or -1
	RowAt(c *Container, line int) int
}

// Container is the dropdown list that follows an input
type Container struct {
	ID        string
	Class     string
	TopOffset int
	Hidden    bool
	Rows      []domain.Row
	Renderer  ContainerRenderer

	attached bool
}

// NewContainer creates a hidden, unattached container
func NewContainer(id, class string) *Container {
	return &Container{ID: id, Class: class, Hidden: true}
}

func (c *Container) ElementID() string { return c.ID }

// Attached reports whether the container has been placed on a page
func (c *Container) Attached() bool {
	return c.attached
}

func (c *Container) View() string {
	if c.Hidden || c.Renderer == nil {
		return ""
	}
	return c.Renderer.Render(c)
}

// RowAt maps a line inside the container to a row index, or -1
func (c *Container) RowAt(line int) int {
	if c.Renderer == nil {
		return -1
	}
	return c.Renderer.RowAt(c, line)
}

// IsVisible reports whether the container is on a page and shown
func IsVisible(c *Container) bool {
	return c != nil && c.attached && !c.Hidden
}
