package views

import (
	"github.com/charmbracelet/lipgloss"

	"suggestable/internal/config"
)

// Stylesheet maps class names to styles, the way CSS maps classes to rules.
// Unknown classes render unstyled.
type Stylesheet map[string]lipgloss.Style

// Get returns the style for class, or an empty style
func (s Stylesheet) Get(class string) lipgloss.Style {
	if st, ok := s[class]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// Set registers or replaces the style for class
func (s Stylesheet) Set(class string, style lipgloss.Style) {
	s[class] = style
}

// DefaultStylesheet styles the default class names
func DefaultStylesheet() Stylesheet {
	return Stylesheet{
		"suggestable-container": lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		"suggestable-item":        lipgloss.NewStyle(),
		"suggestable-item-active": lipgloss.NewStyle().Background(lipgloss.Color("238")),
		"suggestable-term":        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		"suggestable-suggest":     lipgloss.NewStyle(),
		"suggestable-delimiter":   lipgloss.NewStyle().Faint(true),
		"suggestable-text":        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

// StylesheetFor returns the default styles registered under the class names
// configured in opts
func StylesheetFor(opts config.Options) Stylesheet {
	def := config.DefaultOptions()
	base := DefaultStylesheet()
	sheet := Stylesheet{}
	for _, c := range [][2]string{
		{def.ContainerClass, opts.ContainerClass},
		{def.ItemClass, opts.ItemClass},
		{def.ItemActiveClass, opts.ItemActiveClass},
		{def.TermClass, opts.TermClass},
		{def.SuggestClass, opts.SuggestClass},
		{def.DelimiterClass, opts.DelimiterClass},
		{def.TextClass, opts.TextClass},
	} {
		sheet.Set(c[1], base.Get(c[0]))
	}
	return sheet
}

// Styles contains the styles of the surrounding form
type Styles struct {
	Title       lipgloss.Style
	Input       lipgloss.Style
	InputFocus  lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	Spinner     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Spinner:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}
