package views

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"suggestable/internal/config"
	"suggestable/internal/domain"
	"suggestable/internal/page"
)

// DefaultMaxWidth caps the width of a row's text
const DefaultMaxWidth = 60

// Dropdown renders suggestion rows using the class names from the widget
// options. Every row occupies exactly one line.
type Dropdown struct {
	sheet    Stylesheet
	opts     config.Options
	MaxWidth int
}

// NewDropdown creates a renderer for containers built with opts
func NewDropdown(sheet Stylesheet, opts config.Options) *Dropdown {
	if sheet == nil {
		sheet = DefaultStylesheet()
	}
	return &Dropdown{sheet: sheet, opts: opts, MaxWidth: DefaultMaxWidth}
}

var _ page.ContainerRenderer = (*Dropdown)(nil)

// Render draws the container frame around one line per row
func (d *Dropdown) Render(c *page.Container) string {
	if len(c.Rows) == 0 {
		return ""
	}

	width := 0
	texts := make([][]string, len(c.Rows))
	for i, r := range c.Rows {
		texts[i] = fitSpans(d.rowSpans(r), d.MaxWidth)
		if w := runewidth.StringWidth(strings.Join(texts[i], "")); w > width {
			width = w
		}
	}

	lines := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		lines[i] = d.renderRow(r, texts[i], width)
	}

	return d.sheet.Get(c.Class).Render(strings.Join(lines, "\n"))
}

// RowAt maps a container line to a row index
func (d *Dropdown) RowAt(c *page.Container, line int) int {
	st := d.sheet.Get(c.Class)
	i := line - st.GetMarginTop() - st.GetBorderTopSize() - st.GetPaddingTop()
	if i < 0 || i >= len(c.Rows) {
		return -1
	}
	return i
}

// rowSpans is term, suggestion and, when present, delimiter and text
func (d *Dropdown) rowSpans(r domain.Row) []string {
	spans := []string{r.Term, r.Suggest}
	if r.HasText() {
		spans = append(spans, d.opts.DelimiterText, r.Text)
	}
	return spans
}

func (d *Dropdown) renderRow(r domain.Row, spans []string, width int) string {
	classes := []string{d.opts.TermClass, d.opts.SuggestClass, d.opts.DelimiterClass, d.opts.TextClass}

	var b strings.Builder
	for i, s := range spans {
		b.WriteString(d.sheet.Get(classes[i]).Render(s))
	}
	pad := width - runewidth.StringWidth(strings.Join(spans, ""))
	if pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	item := d.sheet.Get(d.opts.ItemClass)
	if r.Active {
		// active rules win over the item rules
		item = d.sheet.Get(d.opts.ItemActiveClass).Inherit(item)
	}
	return item.Render(b.String())
}

// fitSpans truncates spans so their combined width is at most limit.
// Spans after the cut are dropped.
func fitSpans(spans []string, limit int) []string {
	if limit <= 0 {
		return spans
	}
	out := make([]string, 0, len(spans))
	left := limit
	for _, s := range spans {
		w := runewidth.StringWidth(s)
		if w <= left {
			out = append(out, s)
			left -= w
			continue
		}
		if left > 0 {
			out = append(out, runewidth.Truncate(s, left, "…"))
		}
		break
	}
	return out
}

// RenderRowPlain draws a row without styles
func RenderRowPlain(r domain.Row, delimiter string) string {
	s := r.Term + r.Suggest
	if r.HasText() {
		s += delimiter + r.Text
	}
	return s
}
