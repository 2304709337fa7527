package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/richtext"
)

type selectionState struct {
	active    bool
	anchor    int
	contained bool
	bounds    *Rect // host-reported bounds win over computed ones
}

// Model is a Bubble Tea component that renders and edits a block document.
type Model struct {
	cfg Config
	doc block.Document

	cursor  block.Cursor
	sel     selectionState
	toolbar Toolbar

	focused bool

	viewport viewport.Model
	layout   layout
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:      cfg,
		doc:      block.New(cfg.Blocks, block.Options{NewID: cfg.NewID}),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	first, _ := m.doc.First()
	m.cursor = block.Cursor{BlockID: first.ID}
	m.rebuildContent()
	return m
}

// Document returns the current document.
func (m Model) Document() block.Document { return m.doc }

// Cursor returns the active insertion point.
func (m Model) Cursor() block.Cursor { return m.cursor }

// Toolbar returns the floating toolbar state.
func (m Model) Toolbar() Toolbar { return m.toolbar }

// Selection returns the live selection derived from editor state.
func (m Model) Selection() Selection { return m.selection() }

// ReadOnly reports whether mutation paths are disabled.
func (m Model) ReadOnly() bool { return m.cfg.ReadOnly }

// SetReadOnly toggles read-only mode. Entering it hides the toolbar.
func (m Model) SetReadOnly(ro bool) Model {
	m.cfg.ReadOnly = ro
	if ro {
		m.toolbar = Toolbar{}
	}
	m.rebuildContent()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

// Blur removes focus. The selection leaves the editor boundary, so the
// toolbar hides.
func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.toolbar = Toolbar{}
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case SelectionMsg:
		return m.observeHostSelection(msg.Selection), nil
	case PolishResultMsg:
		m = m.applyPolish(msg)
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.viewport.Height <= 0 {
		return m.overlayToolbar(m.renderContent())
	}
	return m.overlayToolbar(m.viewport.View())
}

// SetContent replaces the content of block id, as a host that owns text
// input reports edits. The cursor is clamped into the new content.
func (m Model) SetContent(id, content string) Model {
	if m.cfg.ReadOnly {
		return m
	}
	next, ch := m.doc.UpdateContent(id, content)
	m.commit(next, ch)
	m.observe()
	return m
}

// FocusBlock moves input focus to block id.
func (m Model) FocusBlock(id string, p block.Placement) Model {
	if _, ok := m.doc.Find(id); !ok {
		return m
	}
	m.focusTo(block.Focus{BlockID: id, Placement: p})
	m.rebuildContent()
	m.followCursor()
	return m
}

// commit installs next when ch is effective, moves focus if instructed, and
// reports the change.
func (m *Model) commit(next block.Document, ch block.Change) {
	if !ch.Effective() {
		return
	}
	m.doc = next
	if ch.HasFocus {
		m.focusTo(ch.Focus)
	} else {
		m.ensureCursor()
	}
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(ChangeEvent{Document: next, Change: ch})
	}
	if ch.HasFocus && m.cfg.OnFocus != nil {
		m.cfg.OnFocus(ch.Focus)
	}
	m.rebuildContent()
	m.followCursor()
}

// focusTo moves the cursor without reporting a change. Selections never span
// blocks, so moving focus drops it.
func (m *Model) focusTo(f block.Focus) {
	b, ok := m.doc.Find(f.BlockID)
	if !ok {
		m.ensureCursor()
		return
	}
	off := 0
	if f.Placement == block.PlaceEnd {
		off = richtext.Len(b.Content)
	}
	if f.BlockID != m.cursor.BlockID {
		m.sel = selectionState{}
		m.toolbar = Toolbar{}
	}
	m.cursor = block.Cursor{BlockID: f.BlockID, Offset: off}
}

// ensureCursor keeps the cursor on an existing block and inside its content.
func (m *Model) ensureCursor() {
	b, ok := m.doc.Find(m.cursor.BlockID)
	if !ok {
		b, _ = m.doc.First()
		m.cursor = block.Cursor{BlockID: b.ID}
		m.sel = selectionState{}
		m.toolbar = Toolbar{}
		return
	}
	n := richtext.Len(b.Content)
	if m.cursor.Offset > n {
		m.cursor.Offset = n
	}
	if m.cursor.Offset < 0 {
		m.cursor.Offset = 0
	}
	m.sel.anchor = clampInt(m.sel.anchor, 0, n)
}

func (m Model) current() block.Block {
	b, _ := m.doc.Find(m.cursor.BlockID)
	return b
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row, ok := m.layout.rowOf(m.cursor.BlockID)
	if !ok {
		return
	}
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
