package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad/autoformat"
	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/richtext"
)

// Resolve maps a key event to an intent against the current editor state,
// without applying it.
func (m Model) Resolve(msg tea.KeyMsg) Intent {
	cur := m.current()
	in := Intent{BlockID: cur.ID}
	km := m.cfg.KeyMap

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		in.Kind, in.Payload = IntentInsertText, TextPayload{Text: string(msg.Runes)}
		return in
	}

	if m.toolbar.Visible() {
		if t, ok := m.toolbarRetype(msg); ok {
			in.Kind, in.Payload = IntentRetype, RetypePayload{Type: t}
			return in
		}
		if c, ok := m.toolbarStyle(msg); ok {
			in.Kind, in.Payload = IntentInlineStyle, StylePayload{Command: c}
			return in
		}
	}

	idx := m.doc.Index(cur.ID)
	switch {
	case key.Matches(msg, km.Enter):
		in.Kind = IntentInsertBlock
	case key.Matches(msg, km.Backspace):
		if richtext.IsEmpty(cur.Content) {
			in.Kind = IntentRemoveBlock
		} else {
			in.Kind = IntentDeleteText
		}
	case key.Matches(msg, km.Up):
		if idx > 0 {
			in.Kind = IntentFocusPrev
		}
	case key.Matches(msg, km.Down):
		if idx < m.doc.Len()-1 {
			in.Kind = IntentFocusNext
		}
	case key.Matches(msg, km.Space):
		in.Kind = IntentSpace

	case key.Matches(msg, km.Left):
		in.Kind, in.Payload = IntentMove, MovePayload{Dir: DirLeft}
	case key.Matches(msg, km.Right):
		in.Kind, in.Payload = IntentMove, MovePayload{Dir: DirRight}
	case key.Matches(msg, km.Home):
		in.Kind, in.Payload = IntentMove, MovePayload{Dir: DirHome}
	case key.Matches(msg, km.End):
		in.Kind, in.Payload = IntentMove, MovePayload{Dir: DirEnd}
	case key.Matches(msg, km.SelectLeft):
		in.Kind, in.Payload = IntentSelect, MovePayload{Dir: DirLeft}
	case key.Matches(msg, km.SelectRight):
		in.Kind, in.Payload = IntentSelect, MovePayload{Dir: DirRight}

	case key.Matches(msg, km.ToggleChecked):
		if cur.Type == block.Todo {
			in.Kind = IntentToggleChecked
		}
	case key.Matches(msg, km.DeleteBlock):
		in.Kind = IntentDeleteBlock
	case key.Matches(msg, km.AppendBlock):
		in.Kind = IntentAppendBlock
	case key.Matches(msg, km.Polish):
		in.Kind = IntentPolish
	case key.Matches(msg, km.Copy):
		in.Kind = IntentCopy

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			in.Kind, in.Payload = IntentInsertText, TextPayload{Text: string(msg.Runes)}
		}
	}
	return in
}

func (m Model) toolbarRetype(msg tea.KeyMsg) (block.Type, bool) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Heading1):
		return block.Heading1, true
	case key.Matches(msg, km.Heading2):
		return block.Heading2, true
	case key.Matches(msg, km.Heading3):
		return block.Heading3, true
	case key.Matches(msg, km.Bullet):
		return block.Bullet, true
	default:
		return "", false
	}
}

func (m Model) toolbarStyle(msg tea.KeyMsg) (StyleCommand, bool) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Bold):
		return StyleBold, true
	case key.Matches(msg, km.Italic):
		return StyleItalic, true
	case key.Matches(msg, km.Underline):
		return StyleUnderline, true
	default:
		return "", false
	}
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	in := m.Resolve(msg)
	if in.Kind == IntentNone {
		return m, nil
	}
	if m.cfg.ReadOnly && in.Kind.Mutating() {
		return m, nil
	}

	var cmd tea.Cmd
	m, cmd = m.apply(in)

	m.rebuildContent()
	m.followCursor()
	m.observe()
	return m, cmd
}

func (m Model) apply(in Intent) (Model, tea.Cmd) {
	switch in.Kind {
	case IntentInsertBlock:
		next, ch := m.doc.InsertAfter(in.BlockID, block.Paragraph)
		m.commit(next, ch)
	case IntentRemoveBlock, IntentDeleteBlock:
		next, ch := m.doc.Remove(in.BlockID)
		m.commit(next, ch)
	case IntentAppendBlock:
		next, ch := m.doc.Append(block.Paragraph)
		m.commit(next, ch)
	case IntentToggleChecked:
		next, ch := m.doc.ToggleChecked(in.BlockID)
		m.commit(next, ch)

	case IntentFocusPrev:
		if p, ok := m.doc.Prev(in.BlockID); ok {
			m.moveFocus(block.Focus{BlockID: p.ID, Placement: block.PlaceEnd})
		}
	case IntentFocusNext:
		if n, ok := m.doc.Next(in.BlockID); ok {
			m.moveFocus(block.Focus{BlockID: n.ID, Placement: block.PlaceStart})
		}

	case IntentSpace:
		m.typeSpace()
	case IntentInsertText:
		m.insertText(in.Payload.(TextPayload).Text)
	case IntentDeleteText:
		m.deleteBackward()
	case IntentMove:
		m.moveCursor(in.Payload.(MovePayload).Dir, false)
	case IntentSelect:
		m.moveCursor(in.Payload.(MovePayload).Dir, true)

	case IntentRetype:
		next, ch := m.doc.ChangeType(in.BlockID, in.Payload.(RetypePayload).Type)
		m.commit(next, ch)
	case IntentInlineStyle:
		m.applyInlineStyle(in.Payload.(StylePayload).Command)

	case IntentPolish:
		return m, m.Polish(in.BlockID)
	case IntentCopy:
		m.copySelection()
	}
	return m, nil
}

func (m *Model) moveFocus(f block.Focus) {
	m.focusTo(f)
	if m.cfg.OnFocus != nil {
		m.cfg.OnFocus(f)
	}
}

// typeSpace runs autoformat; when nothing fires the space is inserted.
func (m *Model) typeSpace() {
	cur := m.current()
	if m.sel.active {
		m.deleteSelection()
		cur = m.current()
	}
	res := autoformat.OnSpace(cur, m.cursor.Offset)
	switch res.Kind {
	case autoformat.KindBlock:
		next, ch := m.doc.Retype(cur.ID, res.Type)
		m.commit(next, ch)
		m.cursor.Offset = 0
	case autoformat.KindInline:
		next, ch := m.doc.UpdateContent(cur.ID, res.Content)
		m.commit(next, ch)
		m.cursor.Offset = res.Cursor
	default:
		m.insertText(" ")
	}
}

func (m *Model) insertText(s string) {
	if m.sel.active {
		m.deleteSelection()
	}
	cur := m.current()
	content, at := richtext.InsertText(cur.Content, m.cursor.Offset, s)
	next, ch := m.doc.UpdateContent(cur.ID, content)
	m.commit(next, ch)
	m.cursor.Offset = at
}

func (m *Model) deleteBackward() {
	if m.sel.active {
		m.deleteSelection()
		return
	}
	cur := m.current()
	content, at := richtext.DeleteBefore(cur.Content, m.cursor.Offset)
	next, ch := m.doc.UpdateContent(cur.ID, content)
	m.commit(next, ch)
	m.cursor.Offset = at
}

func (m *Model) deleteSelection() {
	sel := m.selection()
	m.sel = selectionState{}
	if sel.Collapsed() {
		return
	}
	cur := m.current()
	content := cur.Content
	at := sel.End
	for at > sel.Start {
		var next int
		content, next = richtext.DeleteBefore(content, at)
		if next >= at {
			break
		}
		at = next
	}
	next, ch := m.doc.UpdateContent(cur.ID, content)
	m.commit(next, ch)
	m.cursor.Offset = sel.Start
}

func (m *Model) moveCursor(dir MoveDir, extend bool) {
	n := richtext.Len(m.current().Content)
	switch {
	case !extend:
		m.sel = selectionState{}
	case !m.sel.active:
		m.sel = selectionState{active: true, anchor: m.cursor.Offset, contained: true}
	default:
		m.sel.bounds = nil
	}

	off := m.cursor.Offset
	switch dir {
	case DirLeft:
		off--
	case DirRight:
		off++
	case DirHome:
		off = 0
	case DirEnd:
		off = n
	}
	if off < 0 {
		off = 0
	}
	if off > n {
		off = n
	}
	m.cursor.Offset = off
	if m.sel.active && m.sel.anchor == off {
		m.sel = selectionState{}
	}
}

func (m *Model) applyInlineStyle(cmd StyleCommand) {
	if m.cfg.InlineStyler == nil || !m.toolbar.Visible() {
		return
	}
	sel := m.toolbar.Selection
	b, ok := m.doc.Find(sel.BlockID)
	if !ok {
		return
	}
	content, err := m.cfg.InlineStyler.ApplyInlineStyle(cmd, sel, b.Content)
	if err != nil {
		m.cfg.Logger.Warn("inline style failed", "command", string(cmd), "block", sel.BlockID, "err", err)
		return
	}
	next, ch := m.doc.UpdateContent(sel.BlockID, content)
	m.commit(next, ch)
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	cur := m.current()
	text := richtext.Plain(cur.Content)
	if sel := m.selection(); !sel.Collapsed() {
		text = plainRange(cur.Content, sel.Start, sel.End)
	}
	if text == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(text); err != nil {
		m.cfg.Logger.Warn("clipboard write failed", "err", err)
	}
}

func plainRange(content string, start, end int) string {
	chars := richtext.Chars(content)
	if start < 0 {
		start = 0
	}
	if end > len(chars) {
		end = len(chars)
	}
	var out []byte
	for _, c := range chars[start:end] {
		out = append(out, c.Text...)
	}
	return string(out)
}

// selection derives the live selection from cursor and anchor state.
func (m Model) selection() Selection {
	if !m.sel.active || m.sel.anchor == m.cursor.Offset {
		return Selection{}
	}
	start, end := m.sel.anchor, m.cursor.Offset
	if start > end {
		start, end = end, start
	}
	sel := Selection{
		BlockID:   m.cursor.BlockID,
		Start:     start,
		End:       end,
		Contained: m.sel.contained && m.focused,
	}
	if m.sel.bounds != nil {
		sel.Bounds = *m.sel.bounds
	} else {
		sel.Bounds = m.layout.bounds(m.cursor.BlockID, start, end)
	}
	return sel
}

// observeHostSelection adopts a selection reported by the host. Selections in
// other blocks move focus there.
func (m Model) observeHostSelection(sel Selection) Model {
	if sel.Collapsed() {
		m.sel = selectionState{}
		m.toolbar = Toolbar{}
		m.rebuildContent()
		return m
	}
	b, ok := m.doc.Find(sel.BlockID)
	if !ok {
		m.toolbar = Toolbar{}
		return m
	}
	n := richtext.Len(b.Content)
	sel.Start = clampInt(sel.Start, 0, n)
	sel.End = clampInt(sel.End, 0, n)
	if sel.Start > sel.End {
		sel.Start, sel.End = sel.End, sel.Start
	}
	if sel.Collapsed() {
		m.sel = selectionState{}
		m.toolbar = Toolbar{}
		m.rebuildContent()
		return m
	}
	if sel.BlockID != m.cursor.BlockID {
		m.moveFocus(block.Focus{BlockID: sel.BlockID})
	}
	bounds := sel.Bounds
	m.sel = selectionState{active: true, anchor: sel.Start, contained: sel.Contained, bounds: &bounds}
	m.cursor.Offset = sel.End
	m.ensureCursor()

	m.rebuildContent()
	m.observe()
	return m
}

// observe feeds the live selection to the toolbar. Read-only editors never
// show it.
func (m *Model) observe() {
	if m.cfg.ReadOnly {
		m.toolbar = Toolbar{}
		return
	}
	m.toolbar = m.toolbar.Observe(m.selection(), m.cfg.ToolbarOffset)
}
