package editor

import "github.com/iw2rmb/blockpad/block"

// Point is a cell position in rendered content coordinates.
type Point struct {
	X, Y int
}

// Rect is a cell rectangle in rendered content coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Selection is the live text selection as seen by the toolbar controller.
// Start and End are visible offsets into the block's content, Start <= End.
type Selection struct {
	BlockID   string
	Start     int
	End       int
	Contained bool // fully inside the editor boundary
	Bounds    Rect
}

// Collapsed reports whether the selection has no extent.
func (s Selection) Collapsed() bool {
	return s.BlockID == "" || s.Start == s.End
}

// SelectionMsg lets a host report a selection it tracks itself.
type SelectionMsg struct {
	Selection Selection
}

// ToolbarState is the floating toolbar visibility.
type ToolbarState uint8

const (
	ToolbarHidden ToolbarState = iota
	ToolbarVisible
)

func (s ToolbarState) String() string {
	if s == ToolbarVisible {
		return "visible"
	}
	return "hidden"
}

// StyleCommand is an inline style applied to the live selection by the host.
type StyleCommand string

const (
	StyleBold      StyleCommand = "bold"
	StyleItalic    StyleCommand = "italic"
	StyleUnderline StyleCommand = "underline"
)

// InlineStyler is the host's native inline formatting capability. It returns
// the block content with cmd applied to sel.
type InlineStyler interface {
	ApplyInlineStyle(cmd StyleCommand, sel Selection, content string) (string, error)
}

// Toolbar is the selection-anchored command surface.
type Toolbar struct {
	State     ToolbarState
	Position  Point
	Selection Selection
}

// Visible reports whether the toolbar is shown.
func (t Toolbar) Visible() bool { return t.State == ToolbarVisible }

// Observe transitions the toolbar for a new selection. A non-collapsed,
// contained selection shows it anchored offset rows above the selection
// bounds, or the same distance below when there is no room above; anything
// else hides it.
func (t Toolbar) Observe(sel Selection, offset int) Toolbar {
	if sel.Collapsed() || !sel.Contained {
		return Toolbar{}
	}
	y := sel.Bounds.Y - offset
	if y < 0 {
		y = sel.Bounds.Y + max(sel.Bounds.Height, 1) + offset - 1
	}
	return Toolbar{
		State:     ToolbarVisible,
		Position:  Point{X: sel.Bounds.X, Y: y},
		Selection: sel,
	}
}

// RetypeActions are the block types offered by the toolbar.
func RetypeActions() []block.Type {
	return []block.Type{block.Heading1, block.Heading2, block.Heading3, block.Bullet}
}

// StyleActions are the inline style commands offered by the toolbar.
func StyleActions() []StyleCommand {
	return []StyleCommand{StyleBold, StyleItalic, StyleUnderline}
}
