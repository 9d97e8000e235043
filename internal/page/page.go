// Package page is the host document widgets are bound into: an ordered set
// of elements addressable by id, rendered top to bottom, with dropdown
// containers drawn over whatever follows their anchor.
package page

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"suggestable/internal/eventbus"
)

// Element is anything that can live on a page
type Element interface {
	ElementID() string
	View() string
}

// Page holds the elements of one form and the bus its widgets share
type Page struct {
	elements []Element
	bus      eventbus.EventBus
	layout   []placement
}

type placement struct {
	el      Element
	top     int
	height  int
	width   int
	overlay bool
}

// New creates an empty page. A nil bus gets a fresh one.
func New(bus eventbus.EventBus) *Page {
	if bus == nil {
		bus = eventbus.New()
	}
	return &Page{bus: bus}
}

// Bus returns the page-wide event bus
func (p *Page) Bus() eventbus.EventBus {
	return p.bus
}

// Add appends el to the end of the page
func (p *Page) Add(el Element) {
	p.elements = append(p.elements, el)
	p.attach(el)
}

// InsertAfter places el directly after ref.
// It returns false and leaves the page untouched when ref is not on the page.
func (p *Page) InsertAfter(ref, el Element) bool {
	i := p.indexOf(ref)
	if i < 0 {
		return false
	}
	p.elements = append(p.elements, nil)
	copy(p.elements[i+2:], p.elements[i+1:])
	p.elements[i+1] = el
	p.attach(el)
	return true
}

// Lookup finds an element by id
func (p *Page) Lookup(id string) (Element, bool) {
	if id == "" {
		return nil, false
	}
	for _, el := range p.elements {
		if el.ElementID() == id {
			return el, true
		}
	}
	return nil, false
}

// Contains reports whether el is on the page
func (p *Page) Contains(el Element) bool {
	return p.indexOf(el) >= 0
}

// Elements returns the page's elements in document order
func (p *Page) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

func (p *Page) indexOf(el Element) int {
	for i, e := range p.elements {
		if e == el {
			return i
		}
	}
	return -1
}

func (p *Page) attach(el Element) {
	if c, ok := el.(*Container); ok {
		c.attached = true
	}
}

// View renders the page. Containers do not take part in the flow; they are
// drawn over the lines below their anchor, TopOffset lines from its top,
// leaving the rest of each covered line visible.
func (p *Page) View() string {
	var lines []string
	p.layout = p.layout[:0]

	tops := make(map[Element]int, len(p.elements))
	var overlays []*Container
	var anchor Element

	for _, el := range p.elements {
		if c, ok := el.(*Container); ok {
			if anchor != nil {
				tops[c] = tops[anchor]
			}
			overlays = append(overlays, c)
			continue
		}
		anchor = el
		v := el.View()
		tops[el] = len(lines)
		if v == "" {
			continue
		}
		elLines := strings.Split(v, "\n")
		p.layout = append(p.layout, placement{el: el, top: len(lines), height: len(elLines), width: lipgloss.Width(v)})
		lines = append(lines, elLines...)
	}

	for _, c := range overlays {
		if !IsVisible(c) {
			continue
		}
		v := c.View()
		if v == "" {
			continue
		}
		top := tops[c] + c.TopOffset
		cl := strings.Split(v, "\n")
		for len(lines) < top+len(cl) {
			lines = append(lines, "")
		}
		for i, l := range cl {
			// keep whatever the overlay does not cover
			lines[top+i] = l + ansi.TruncateLeft(lines[top+i], lipgloss.Width(l), "")
		}
		p.layout = append(p.layout, placement{el: c, top: top, height: len(cl), width: lipgloss.Width(v), overlay: true})
	}

	return strings.Join(lines, "\n")
}

// HitTest returns the element drawn at (x, y) in the last View and the line
// within it, or nil and -1 when nothing is there
func (p *Page) HitTest(x, y int) (Element, int) {
	for i := len(p.layout) - 1; i >= 0; i-- {
		pl := p.layout[i]
		if !pl.overlay {
			continue
		}
		if y >= pl.top && y < pl.top+pl.height && x >= 0 && x < pl.width {
			return pl.el, y - pl.top
		}
	}
	for _, pl := range p.layout {
		if pl.overlay {
			continue
		}
		if y >= pl.top && y < pl.top+pl.height {
			return pl.el, y - pl.top
		}
	}
	return nil, -1
}

// OuterHeight is the rendered height of content in style, counting padding,
// borders and margins
func OuterHeight(style lipgloss.Style, content string) int {
	return lipgloss.Height(style.Render(content))
}
