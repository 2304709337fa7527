package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/blockpad/block"
)

// Style controls the editor's rendering.
type Style struct {
	Paragraph   lipgloss.Style
	Heading1    lipgloss.Style
	Heading2    lipgloss.Style
	Heading3    lipgloss.Style
	Bullet      lipgloss.Style
	Todo        lipgloss.Style
	TodoChecked lipgloss.Style
	Code        lipgloss.Style
	Image       lipgloss.Style

	Marker      lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	Toolbar       lipgloss.Style
	ToolbarItem   lipgloss.Style
	ToolbarActive lipgloss.Style
}

func DefaultStyle() Style {
	muted := lipgloss.Color("240")
	return Style{
		Paragraph:   lipgloss.NewStyle(),
		Heading1:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Heading2:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("177")),
		Heading3:    lipgloss.NewStyle().Bold(true),
		Bullet:      lipgloss.NewStyle(),
		Todo:        lipgloss.NewStyle(),
		TodoChecked: lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		Code:        lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
		Image:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Underline(true),

		Marker:      lipgloss.NewStyle().Foreground(muted),
		Placeholder: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),

		Toolbar:       lipgloss.NewStyle().Background(lipgloss.Color("236")),
		ToolbarItem:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("250")).Padding(0, 1),
		ToolbarActive: lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1),
	}
}

// forBlock returns the base text style of b.
func (s Style) forBlock(b block.Block) lipgloss.Style {
	switch b.Type {
	case block.Heading1:
		return s.Heading1
	case block.Heading2:
		return s.Heading2
	case block.Heading3:
		return s.Heading3
	case block.Bullet:
		return s.Bullet
	case block.Todo:
		if b.Checked {
			return s.TodoChecked
		}
		return s.Todo
	case block.Code:
		return s.Code
	case block.Image:
		return s.Image
	default:
		return s.Paragraph
	}
}
