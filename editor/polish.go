package editor

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad/richtext"
)

// Improver rewrites plain text, typically via a remote text-improvement
// service.
type Improver interface {
	Improve(ctx context.Context, text string) (string, error)
}

// PolishResultMsg delivers the outcome of an async polish request.
type PolishResultMsg struct {
	BlockID string
	Text    string
	Err     error
}

// Polish returns a command that sends the plain text of block id to the
// Improver. It returns nil when there is nothing to do: read-only editor, no
// Improver, unknown block, or empty content.
//
// The result is plain text; it is escaped and overwrites the block whenever it
// arrives. Edits made to the same
// block while the request is in flight are lost (last write wins), and results
// for blocks removed in the meantime are dropped.
func (m Model) Polish(id string) tea.Cmd {
	if m.cfg.ReadOnly || m.cfg.Improver == nil {
		return nil
	}
	b, ok := m.doc.Find(id)
	if !ok {
		return nil
	}
	text := richtext.Plain(b.Content)
	if text == "" {
		return nil
	}

	imp := m.cfg.Improver
	timeout := m.cfg.PolishTimeout
	m.cfg.Logger.Debug("polish requested", "block", id, "chars", len(text))
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		out, err := imp.Improve(ctx, text)
		return PolishResultMsg{BlockID: id, Text: out, Err: err}
	}
}

func (m Model) applyPolish(msg PolishResultMsg) Model {
	if msg.Err != nil {
		m.cfg.Logger.Warn("polish failed", "block", msg.BlockID, "err", msg.Err)
		return m
	}
	if m.cfg.ReadOnly {
		return m
	}
	if _, ok := m.doc.Find(msg.BlockID); !ok {
		m.cfg.Logger.Debug("polish result dropped, block removed", "block", msg.BlockID)
		return m
	}
	next, ch := m.doc.UpdateContent(msg.BlockID, richtext.Escape(msg.Text))
	m.commit(next, ch)
	m.observe()
	m.cfg.Logger.Debug("polish applied", "block", msg.BlockID, "changed", ch.Effective())
	return m
}
