package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks). ctrl+i is
// indistinguishable from tab in most terminals, so italic uses alt+i.
type KeyMap struct {
	Enter, Backspace, Space key.Binding
	Up, Down                key.Binding
	Left, Right, Home, End  key.Binding
	SelectLeft, SelectRight key.Binding

	ToggleChecked key.Binding
	DeleteBlock   key.Binding
	AppendBlock   key.Binding
	Polish        key.Binding
	Copy          key.Binding

	// Toolbar actions; only active while the toolbar is visible.
	Heading1, Heading2, Heading3, Bullet key.Binding
	Bold, Italic, Underline              key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Only plain enter creates a block; shift+enter is left to the host.
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new block")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left / remove empty block")),
		Space:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "autoformat")),

		Up:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous block")),
		Down: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next block")),

		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Home:  key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "block start")),
		End:   key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "block end")),

		SelectLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		SelectRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),

		ToggleChecked: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle todo")),
		DeleteBlock:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete block")),
		AppendBlock:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add block at end")),
		Polish:        key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "AI polish")),
		Copy:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),

		Heading1: key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "heading 1")),
		Heading2: key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "heading 2")),
		Heading3: key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "heading 3")),
		Bullet:   key.NewBinding(key.WithKeys("alt+8"), key.WithHelp("alt+8", "bullet list")),

		Bold:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:    key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "underline")),
	}
}
