package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/internal/grapheme"
	"github.com/iw2rmb/blockpad/richtext"
)

const defaultPlaceholder = "Type '/' for commands"

// blockLayout records where one block landed in rendered content.
type blockLayout struct {
	row    int     // first content row
	rows   int     // rows occupied
	marker int     // marker width in cells
	pos    []Point // cell position of each visible offset, len = Len+1
}

// layout maps blocks to rendered rows. It is rebuilt on every render.
type layout struct {
	width  int
	blocks map[string]blockLayout
}

func (l layout) rowOf(id string) (int, bool) {
	bl, ok := l.blocks[id]
	if !ok {
		return 0, false
	}
	return bl.row, true
}

// bounds returns the cell rectangle covering visible offsets [start, end) of
// block id.
func (l layout) bounds(id string, start, end int) Rect {
	bl, ok := l.blocks[id]
	if !ok || len(bl.pos) == 0 {
		return Rect{}
	}
	start = clampInt(start, 0, len(bl.pos)-1)
	end = clampInt(end, start, len(bl.pos)-1)
	a, b := bl.pos[start], bl.pos[end]
	r := Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y + 1}
	if a.Y != b.Y {
		r.X = bl.marker
		r.Width = l.width - bl.marker
	}
	if r.Width < 0 {
		r.Width = 0
	}
	return r
}

func marker(b block.Block) string {
	switch b.Type {
	case block.Bullet:
		return "• "
	case block.Todo:
		if b.Checked {
			return "[x] "
		}
		return "[ ] "
	case block.Code:
		return "│ "
	case block.Image:
		return "▣ "
	default:
		return ""
	}
}

func placeholder(b block.Block) string {
	switch b.Type {
	case block.Heading1:
		return "Heading 1"
	case block.Heading2:
		return "Heading 2"
	case block.Heading3:
		return "Heading 3"
	case block.Image:
		return "Image URL"
	default:
		return defaultPlaceholder
	}
}

func inlineStyle(base lipgloss.Style, s richtext.Style) lipgloss.Style {
	if s.Has(richtext.Bold) {
		base = base.Bold(true)
	}
	if s.Has(richtext.Italic) {
		base = base.Italic(true)
	}
	if s.Has(richtext.Underline) {
		base = base.Underline(true)
	}
	if s.Has(richtext.Strikethrough) {
		base = base.Strikethrough(true)
	}
	return base
}

func (m *Model) renderContent() string {
	width := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	m.layout = layout{width: width, blocks: make(map[string]blockLayout, m.doc.Len())}

	var out []string
	for _, b := range m.doc.Blocks() {
		rows, bl := m.renderBlock(b, width)
		bl.row = len(out)
		for i := range bl.pos {
			bl.pos[i].Y += bl.row
		}
		m.layout.blocks[b.ID] = bl
		out = append(out, rows...)
	}
	return strings.Join(out, "\n")
}

// renderBlock lays out b as rows of at most width cells. Continuation rows are
// indented past the marker. Positions in the returned layout are relative to
// the block's first row.
func (m *Model) renderBlock(b block.Block, width int) ([]string, blockLayout) {
	st := m.cfg.Style
	base := st.forBlock(b)
	mk := marker(b)
	mw := grapheme.StringWidth(mk)
	avail := width - mw
	if width <= 0 || avail <= 0 {
		avail = int(^uint(0) >> 1)
	}

	hasCursor := m.focused && b.ID == m.cursor.BlockID
	sel := m.selection()
	hasSel := m.focused && !sel.Collapsed() && sel.BlockID == b.ID

	chars := richtext.Chars(b.Content)
	bl := blockLayout{marker: mw, pos: make([]Point, 0, len(chars)+1)}

	if len(chars) == 0 {
		bl.rows = 1
		bl.pos = append(bl.pos, Point{X: mw})
		row := st.Marker.Render(mk)
		if hasCursor {
			row += st.Cursor.Render(" ")
			if !m.cfg.ReadOnly {
				ph := wordwrap.String(placeholder(b), maxInt(avail-1, 1))
				row += st.Placeholder.Render(strings.SplitN(ph, "\n", 2)[0])
			}
		}
		return []string{row}, bl
	}

	var rows []string
	var sb strings.Builder
	sb.WriteString(st.Marker.Render(mk))
	x, y := 0, 0
	flush := func() {
		rows = append(rows, sb.String())
		sb.Reset()
		x = 0
		y++
	}

	for i, c := range chars {
		if c.Text == "\n" || c.Text == "\r\n" {
			bl.pos = append(bl.pos, Point{X: mw + x, Y: y})
			if hasCursor && i == m.cursor.Offset {
				sb.WriteString(st.Cursor.Render(" "))
			}
			flush()
			continue
		}
		w := grapheme.Width(c.Text)
		if x > 0 && x+w > avail {
			flush()
		}
		bl.pos = append(bl.pos, Point{X: mw + x, Y: y})

		style := inlineStyle(base, c.Style)
		switch {
		case hasCursor && i == m.cursor.Offset:
			style = st.Cursor.Inherit(style)
		case hasSel && i >= sel.Start && i < sel.End:
			style = st.Selection.Inherit(style)
		}
		sb.WriteString(style.Render(c.Text))
		x += w
	}
	bl.pos = append(bl.pos, Point{X: mw + x, Y: y})
	if hasCursor && m.cursor.Offset >= len(chars) {
		sb.WriteString(st.Cursor.Render(" "))
	}
	rows = append(rows, sb.String())
	bl.rows = len(rows)

	for i := 1; i < len(rows); i++ {
		rows[i] = indent.String(rows[i], uint(mw))
	}
	return rows, bl
}

// renderToolbar draws the toolbar items for the current block.
func (m Model) renderToolbar() string {
	st := m.cfg.Style
	cur, _ := m.doc.Find(m.toolbar.Selection.BlockID)

	var items []string
	for _, t := range RetypeActions() {
		label := toolbarLabel(t)
		if cur.Type == t {
			items = append(items, st.ToolbarActive.Render(label))
		} else {
			items = append(items, st.ToolbarItem.Render(label))
		}
	}
	items = append(items, st.Toolbar.Render("│"))
	for _, c := range StyleActions() {
		items = append(items, st.ToolbarItem.Render(styleLabel(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func toolbarLabel(t block.Type) string {
	switch t {
	case block.Heading1:
		return "H1"
	case block.Heading2:
		return "H2"
	case block.Heading3:
		return "H3"
	case block.Bullet:
		return "•"
	default:
		return string(t)
	}
}

func styleLabel(c StyleCommand) string {
	switch c {
	case StyleBold:
		return "B"
	case StyleItalic:
		return "I"
	case StyleUnderline:
		return "U"
	default:
		return string(c)
	}
}

// overlayToolbar paints the toolbar over view at the toolbar position, shifted
// by the viewport scroll offset. Rows outside the viewport are left alone.
func (m Model) overlayToolbar(view string) string {
	if !m.toolbar.Visible() {
		return view
	}
	lines := strings.Split(view, "\n")
	y := m.toolbar.Position.Y
	if m.viewport.Height > 0 {
		y -= m.viewport.YOffset
	}
	if y < 0 {
		return view
	}
	// A toolbar placed below the last row gets blank rows to sit on.
	for y >= len(lines) && (m.viewport.Height <= 0 || len(lines) < m.viewport.Height) {
		lines = append(lines, "")
	}
	if y >= len(lines) {
		return view
	}

	bar := m.renderToolbar()
	x := m.toolbar.Position.X
	if limit := m.viewport.Width; limit > 0 {
		if bw := ansi.StringWidth(bar); x+bw > limit {
			x = maxInt(limit-bw, 0)
		}
		bar = ansi.Truncate(bar, limit-x, "")
	}

	line := lines[y]
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(bar), "")
	lines[y] = left + bar + right
	return strings.Join(lines, "\n")
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
