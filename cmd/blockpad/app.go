package main

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pkg/errors"

	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/editor"
	"github.com/iw2rmb/blockpad/internal/config"
	"github.com/iw2rmb/blockpad/internal/logger"
	"github.com/iw2rmb/blockpad/internal/store"
	"github.com/iw2rmb/blockpad/polish"
	"github.com/iw2rmb/blockpad/richtext"
)

// systemClipboard writes through atotto/clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteText(s string) error {
	return clipboard.WriteAll(s)
}

// spanStyler applies toolbar styles by toggling spans over the selection.
type spanStyler struct{}

func (spanStyler) ApplyInlineStyle(cmd editor.StyleCommand, sel editor.Selection, content string) (string, error) {
	var st richtext.Style
	switch cmd {
	case editor.StyleBold:
		st = richtext.Bold
	case editor.StyleItalic:
		st = richtext.Italic
	case editor.StyleUnderline:
		st = richtext.Underline
	default:
		return "", errors.Errorf("unsupported style command %q", cmd)
	}
	return richtext.Toggle(content, sel.Start, sel.End, st), nil
}

// session holds host state shared with editor callbacks. Callbacks run inside
// the editor's Update, so no locking is needed.
type session struct {
	store *store.Store
	log   *logger.Logger
	saves int
	err   error // last save error, cleared by a successful save
}

func (s *session) onChange(ev editor.ChangeEvent) {
	s.log.Debug("document changed",
		"op", ev.Change.Op.String(),
		"block", ev.Change.BlockID,
		"version", ev.Change.VersionAfter,
	)
	s.save(ev.Blocks())
}

func (s *session) save(blocks []block.Block) {
	if err := s.store.Save(blocks); err != nil {
		s.err = err
		s.log.Error("save failed", "path", s.store.Path(), "err", err)
		return
	}
	s.err = nil
	s.saves++
}

// loadBlocks reads the document and sanitizes content that may have been
// edited outside blockpad.
func loadBlocks(st *store.Store) ([]block.Block, error) {
	blocks, err := st.Load()
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		blocks[i].Content = richtext.Sanitize(blocks[i].Content)
	}
	return blocks, nil
}

type keyMap struct {
	Quit, Save, ReadOnly key.Binding
}

var hostKeys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	ReadOnly: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "toggle read-only")),
}

// app is the root Bubble Tea model: the editor plus a status line.
type app struct {
	editor  editor.Model
	session *session
	name    string
	width   int

	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

func newApp(cfg *config.Config) (*app, error) {
	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Path: cfg.Log.Path})
	if err != nil {
		return nil, errors.Wrap(err, "open log")
	}
	a, err := newAppWithLogger(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return a, nil
}

func newAppWithLogger(cfg *config.Config, log *logger.Logger) (*app, error) {
	st := store.New(cfg.Document)
	blocks, err := loadBlocks(st)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	s := &session{store: st, log: log}
	ecfg := editor.Config{
		Blocks:        blocks,
		ReadOnly:      cfg.ReadOnly,
		OnChange:      s.onChange,
		InlineStyler:  spanStyler{},
		Clipboard:     systemClipboard{},
		PolishTimeout: cfg.Polish.Timeout,
		Style:         editor.DefaultStyle(),
		ToolbarOffset: cfg.Toolbar.Offset,
		Logger:        log.Logger.With("component", "editor"),
	}
	// The editor reads zero as "use the default".
	if ecfg.ToolbarOffset == 0 {
		ecfg.ToolbarOffset = -1
	}
	if cfg.Polish.Enabled() {
		client, err := polish.New(polish.Config{
			Endpoint: cfg.Polish.Endpoint,
			APIKey:   cfg.Polish.APIKey,
			Model:    cfg.Polish.Model,
			Retries:  uint64(cfg.Polish.Retries),
			Logger:   log.Logger.With("component", "polish"),
		})
		if err != nil {
			return nil, errors.Wrap(err, "polish client")
		}
		ecfg.Improver = client
	}

	log.Info("document opened", "path", cfg.Document, "blocks", len(blocks), "read_only", cfg.ReadOnly)
	return &app{
		editor:      editor.New(ecfg),
		session:     s,
		name:        filepath.Base(cfg.Document),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}, nil
}

// Close releases the log file.
func (a *app) Close() error {
	return a.session.log.Close()
}

func (a *app) Init() tea.Cmd { return a.editor.Init() }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.editor = a.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, hostKeys.Quit):
			return a, tea.Quit
		case key.Matches(msg, hostKeys.Save):
			if !a.editor.ReadOnly() {
				a.session.save(a.editor.Document().Blocks())
			}
			return a, nil
		case key.Matches(msg, hostKeys.ReadOnly):
			a.editor = a.editor.SetReadOnly(!a.editor.ReadOnly())
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

func (a *app) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), a.status())
}

func (a *app) status() string {
	mode := "edit"
	if a.editor.ReadOnly() {
		mode = "read-only"
	}
	cur := a.editor.Cursor()
	b, _ := a.editor.Document().Find(cur.BlockID)
	line := fmt.Sprintf("%s  %s  %s %d/%d  v%d",
		a.name, mode, b.Type,
		a.editor.Document().Index(cur.BlockID)+1, a.editor.Document().Len(),
		a.editor.Document().Version(),
	)
	if n := a.session.log.Warnings(); n > 0 {
		line += fmt.Sprintf("  %d warnings", n)
	}
	style := a.statusStyle
	if a.session.err != nil {
		line += "  save failed: " + a.session.err.Error()
		style = a.errorStyle
	} else {
		line += "  " + hostKeys.Quit.Help().Key + " " + hostKeys.Quit.Help().Desc
	}
	if a.width > 0 {
		line = ansi.Truncate(line, a.width, "…")
	}
	return style.Render(line)
}
