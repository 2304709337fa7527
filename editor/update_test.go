package editor

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad/block"
)

type memClipboard struct {
	s   string
	err error
}

func (c *memClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.s = s
	return nil
}

func TestResolve_Intents(t *testing.T) {
	m := newTestModel(nil,
		block.Block{ID: "A", Type: block.Paragraph, Content: "a"},
		block.Block{ID: "B", Type: block.Todo},
	)

	cases := []struct {
		name  string
		focus string
		msg   tea.KeyMsg
		want  IntentKind
	}{
		{"enter", "A", keyEnter, IntentInsertBlock},
		{"alt+enter is not enter", "A", tea.KeyMsg{Type: tea.KeyEnter, Alt: true}, IntentNone},
		{"backspace non-empty", "A", keyBackspace, IntentDeleteText},
		{"backspace empty", "B", keyBackspace, IntentRemoveBlock},
		{"up on first", "A", keyUp, IntentNone},
		{"up", "B", keyUp, IntentFocusPrev},
		{"down", "A", keyDown, IntentFocusNext},
		{"down on last", "B", keyDown, IntentNone},
		{"space", "A", keySpace, IntentSpace},
		{"rune", "A", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, IntentInsertText},
		{"alt rune", "A", alt('x'), IntentNone},
		{"toolbar key while hidden", "A", alt('1'), IntentNone},
		{"toggle on paragraph", "A", tea.KeyMsg{Type: tea.KeyCtrlT}, IntentNone},
		{"toggle on todo", "B", tea.KeyMsg{Type: tea.KeyCtrlT}, IntentToggleChecked},
		{"delete block", "A", tea.KeyMsg{Type: tea.KeyCtrlD}, IntentDeleteBlock},
		{"append block", "A", tea.KeyMsg{Type: tea.KeyCtrlN}, IntentAppendBlock},
		{"polish", "A", tea.KeyMsg{Type: tea.KeyCtrlP}, IntentPolish},
		{"copy", "A", tea.KeyMsg{Type: tea.KeyCtrlC}, IntentCopy},
		{"select", "A", keyShiftLeft, IntentSelect},
		{"paste", "A", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("# "), Paste: true}, IntentInsertText},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mm := m.FocusBlock(tc.focus, block.PlaceEnd)
			in := mm.Resolve(tc.msg)
			if in.Kind != tc.want {
				t.Fatalf("intent: got %v, want %v", in.Kind, tc.want)
			}
			if in.BlockID != tc.focus {
				t.Fatalf("intent block: got %q, want %q", in.BlockID, tc.focus)
			}
		})
	}
}

func TestIntentKind_Mutating(t *testing.T) {
	for _, k := range []IntentKind{IntentFocusPrev, IntentFocusNext, IntentMove, IntentSelect, IntentCopy, IntentNone} {
		if k.Mutating() {
			t.Fatalf("%v: got mutating, want not", k)
		}
	}
	for _, k := range []IntentKind{IntentInsertBlock, IntentRemoveBlock, IntentSpace, IntentInsertText, IntentDeleteText, IntentRetype, IntentInlineStyle, IntentPolish} {
		if !k.Mutating() {
			t.Fatalf("%v: got not mutating, want mutating", k)
		}
	}
}

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := newTestModel(nil, block.Block{ID: "A", Type: block.Paragraph, Content: "ab"})

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	m = typeText(m, "<")
	if got, want := blockAt(t, m, 0).Content, "a&lt;b"; got != want {
		t.Fatalf("content after insert: got %q, want %q", got, want)
	}
	if got := m.Cursor().Offset; got != 2 {
		t.Fatalf("cursor after insert: got %d, want 2", got)
	}

	m = press(m, keyBackspace)
	if got, want := blockAt(t, m, 0).Content, "ab"; got != want {
		t.Fatalf("content after backspace: got %q, want %q", got, want)
	}
	if got := m.Cursor().Offset; got != 1 {
		t.Fatalf("cursor after backspace: got %d, want 1", got)
	}

	m = press(m, keyEnd)
	if got := m.Cursor().Offset; got != 2 {
		t.Fatalf("cursor after end: got %d, want 2", got)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyHome})
	if got := m.Cursor().Offset; got != 0 {
		t.Fatalf("cursor after home: got %d, want 0", got)
	}
	m = press(m, keyLeft)
	if got := m.Cursor().Offset; got != 0 {
		t.Fatalf("cursor after left at start: got %d, want 0", got)
	}
}

func TestUpdate_BackspaceClearsStyledLastChar(t *testing.T) {
	m := newTestModel(nil,
		block.Block{ID: "A", Type: block.Paragraph, Content: "x"},
		block.Block{ID: "B", Type: block.Paragraph, Content: "<b>y</b>"},
	)
	m = m.FocusBlock("B", block.PlaceEnd)

	m = press(m, keyBackspace)
	if got := blockAt(t, m, 1).Content; got != "" {
		t.Fatalf("content: got %q, want empty", got)
	}
	m = press(m, keyBackspace)
	if got := m.Document().Len(); got != 1 {
		t.Fatalf("len: got %d, want 1", got)
	}
	if got, want := m.Cursor(), (block.Cursor{BlockID: "A", Offset: 1}); got != want {
		t.Fatalf("cursor: got %+v, want %+v", got, want)
	}
}

func TestUpdate_PasteInsertsLiterally(t *testing.T) {
	m := newTestModel(nil, block.Block{ID: "A", Type: block.Paragraph})
	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("- **a** "), Paste: true})

	if got, want := blockAt(t, m, 0), (block.Block{ID: "A", Type: block.Paragraph, Content: "- **a** "}); got != want {
		t.Fatalf("block: got %+v, want %+v", got, want)
	}
}

func TestUpdate_SelectionDeleteAndReplace(t *testing.T) {
	m := newTestModel(nil, block.Block{ID: "A", Type: block.Paragraph, Content: "hello"})
	m = m.FocusBlock("A", block.PlaceEnd)

	m = press(m, keyShiftLeft, keyShiftLeft, keyShiftLeft)
	sel := m.Selection()
	if sel.BlockID != "A" || sel.Start != 2 || sel.End != 5 {
		t.Fatalf("selection: got %+v, want A [2,5)", sel)
	}

	m = typeText(m, "y")
	if got, want := blockAt(t, m, 0).Content, "hey"; got != want {
		t.Fatalf("content: got %q, want %q", got, want)
	}
	if !m.Selection().Collapsed() {
		t.Fatalf("selection after replace: got %+v, want collapsed", m.Selection())
	}

	m = press(m, keyShiftLeft, keyShiftLeft, keyBackspace)
	if got, want := blockAt(t, m, 0).Content, "h"; got != want {
		t.Fatalf("content after delete: got %q, want %q", got, want)
	}
	if got := m.Cursor().Offset; got != 1 {
		t.Fatalf("cursor: got %d, want 1", got)
	}
}

func TestUpdate_HostSelectionOutOfRangeIsClamped(t *testing.T) {
	cases := []struct {
		name        string
		start, end  int
		wantContent string
		wantCursor  int
	}{
		{"negative start", -2, 3, "def", 0},
		{"end past content", 4, 99, "abcd", 4},
		{"both outside", -5, 50, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(nil,
				block.Block{ID: "A", Type: block.Paragraph, Content: "abcdef"},
				block.Block{ID: "B", Type: block.Paragraph, Content: "x"},
			)
			m, _ = m.Update(SelectionMsg{Selection: Selection{BlockID: "A", Start: tc.start, End: tc.end, Contained: true}})
			sel := m.Selection()
			if sel.Start < 0 || sel.End > 6 {
				t.Fatalf("selection: got %+v, want within [0,6]", sel)
			}

			m = press(m, keyBackspace)
			if got := blockAt(t, m, 0).Content; got != tc.wantContent {
				t.Fatalf("content: got %q, want %q", got, tc.wantContent)
			}
			if got := m.Cursor(); got.BlockID != "A" || got.Offset != tc.wantCursor {
				t.Fatalf("cursor: got %+v, want A@%d", got, tc.wantCursor)
			}
			if got := m.Document().Len(); got != 2 {
				t.Fatalf("len: got %d, want 2", got)
			}
		})
	}
}

func TestUpdate_StrayAngleBracketIsText(t *testing.T) {
	m := newTestModel(nil,
		block.Block{ID: "A", Type: block.Paragraph, Content: "a"},
		block.Block{ID: "B", Type: block.Paragraph, Content: "<x"},
	)
	m = m.FocusBlock("B", block.PlaceEnd)

	m = press(m, keyBackspace)
	if got := m.Document().Len(); got != 2 {
		t.Fatalf("len: got %d, want 2", got)
	}
	if got, want := blockAt(t, m, 1).Content, "<"; got != want {
		t.Fatalf("content: got %q, want %q", got, want)
	}
}

func TestUpdate_PlainMoveCollapsesSelection(t *testing.T) {
	m := newTestModel(nil, block.Block{ID: "A", Type: block.Paragraph, Content: "hello"})
	m = m.FocusBlock("A", block.PlaceEnd)
	m = press(m, keyShiftLeft, keyLeft)
	if !m.Selection().Collapsed() {
		t.Fatalf("selection: got %+v, want collapsed", m.Selection())
	}
	if got := m.Cursor().Offset; got != 3 {
		t.Fatalf("cursor: got %d, want 3", got)
	}
}

func TestUpdate_CopyWritesPlainText(t *testing.T) {
	clip := &memClipboard{}
	m := New(Config{
		Blocks:    []block.Block{{ID: "A", Type: block.Paragraph, Content: "a <b>bold</b> &amp; c"}},
		Clipboard: clip,
	})

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if got, want := clip.s, "a bold & c"; got != want {
		t.Fatalf("clipboard: got %q, want %q", got, want)
	}

	m = m.FocusBlock("A", block.PlaceEnd)
	m = press(m, keyShiftLeft, keyShiftLeft, keyShiftLeft, tea.KeyMsg{Type: tea.KeyCtrlC})
	if got, want := clip.s, "& c"; got != want {
		t.Fatalf("clipboard selection: got %q, want %q", got, want)
	}
}

func TestUpdate_CopyErrorDoesNotMutate(t *testing.T) {
	clip := &memClipboard{err: errors.New("no clipboard")}
	m := New(Config{
		Blocks:    []block.Block{{ID: "A", Type: block.Paragraph, Content: "x"}},
		Clipboard: clip,
	})
	v := m.Document().Version()
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := m.Document().Version(); got != v {
		t.Fatalf("version: got %d, want %d", got, v)
	}
}

func TestUpdate_DeleteBlockRegardlessOfContent(t *testing.T) {
	m := newTestModel(nil,
		block.Block{ID: "A", Type: block.Paragraph, Content: "keep"},
		block.Block{ID: "B", Type: block.Paragraph, Content: "drop me"},
	)
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlD})

	if got := m.Document().Len(); got != 1 {
		t.Fatalf("len: got %d, want 1", got)
	}
	if got, want := blockAt(t, m, 0).ID, "B"; got != want {
		t.Fatalf("remaining: got %q, want %q", got, want)
	}
	if got, want := m.Cursor(), (block.Cursor{BlockID: "B"}); got != want {
		t.Fatalf("cursor: got %+v, want %+v", got, want)
	}
}

func TestUpdate_AppendAndToggle(t *testing.T) {
	m := newTestModel(nil,
		block.Block{ID: "A", Type: block.Todo, Content: "task"},
		block.Block{ID: "B", Type: block.Paragraph},
	)

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if !blockAt(t, m, 0).Checked {
		t.Fatalf("checked: got false, want true")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if got := m.Document().Len(); got != 3 {
		t.Fatalf("len: got %d, want 3", got)
	}
	if got, want := m.Cursor(), (block.Cursor{BlockID: "n1"}); got != want {
		t.Fatalf("cursor: got %+v, want %+v", got, want)
	}
	if got := blockAt(t, m, 2).ID; got != "n1" {
		t.Fatalf("appended id: got %q, want n1", got)
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	rec := &recorder{}
	clip := &memClipboard{}
	m := New(Config{
		Blocks: []block.Block{
			{ID: "A", Type: block.Paragraph, Content: "ab"},
			{ID: "B", Type: block.Paragraph},
		},
		ReadOnly:  true,
		Clipboard: clip,
		OnChange:  func(ev ChangeEvent) { rec.changes = append(rec.changes, ev) },
	})

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Cursor().Offset; got != 1 {
		t.Fatalf("cursor after move: got %d, want 1", got)
	}

	m = press(m,
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")},
		keySpace, keyEnter, keyBackspace,
		tea.KeyMsg{Type: tea.KeyCtrlD},
		tea.KeyMsg{Type: tea.KeyCtrlN},
	)
	if got := blockAt(t, m, 0).Content; got != "ab" {
		t.Fatalf("content: got %q, want %q", got, "ab")
	}
	if got := m.Document().Len(); got != 2 {
		t.Fatalf("len: got %d, want 2", got)
	}
	if len(rec.changes) != 0 {
		t.Fatalf("changes: got %d, want 0", len(rec.changes))
	}

	m = press(m, keyDown)
	if got := m.Cursor().BlockID; got != "B" {
		t.Fatalf("navigation: got %q, want B", got)
	}

	m = press(m, keyUp, tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := clip.s; got != "ab" {
		t.Fatalf("copy in read-only: got %q, want %q", got, "ab")
	}

	m = m.SetContent("A", "changed")
	if got := blockAt(t, m, 0).Content; got != "ab" {
		t.Fatalf("set content in read-only: got %q", got)
	}
}
