package editor

import (
	"log/slog"
	"time"

	"github.com/iw2rmb/blockpad/block"
)

const (
	defaultPolishTimeout = 30 * time.Second
	defaultToolbarOffset = 1
)

// Config configures the editor Model.
type Config struct {
	// Initial document snapshot. Normalized by block.New.
	Blocks []block.Block
	// NewID mints ids for inserted blocks. Default: uuid.
	NewID func() string

	// ReadOnly disables every mutation path. Content still renders and
	// navigation still works.
	ReadOnly bool

	// OnChange is called synchronously after every effective document change.
	OnChange func(ChangeEvent)
	// OnFocus is called whenever the editor moves input focus to a block.
	OnFocus func(block.Focus)

	// Capabilities supplied by the host. Nil disables the matching feature.
	Improver      Improver
	InlineStyler  InlineStyler
	Clipboard     Clipboard
	PolishTimeout time.Duration

	KeyMap KeyMap
	Style  Style

	// ToolbarOffset is how many rows above the selection the toolbar sits.
	// Zero uses the default; negative values place it on the selection row.
	ToolbarOffset int

	Logger *slog.Logger
}

func (cfg Config) withDefaults() Config {
	if len(cfg.KeyMap.Enter.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.PolishTimeout <= 0 {
		cfg.PolishTimeout = defaultPolishTimeout
	}
	if cfg.ToolbarOffset == 0 {
		cfg.ToolbarOffset = defaultToolbarOffset
	}
	if cfg.ToolbarOffset < 0 {
		cfg.ToolbarOffset = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}
