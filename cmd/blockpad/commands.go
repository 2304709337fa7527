package main

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/blockpad"
	"github.com/iw2rmb/blockpad/block"
	"github.com/iw2rmb/blockpad/internal/config"
	"github.com/iw2rmb/blockpad/internal/store"
	"github.com/iw2rmb/blockpad/richtext"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:   "blockpad [document]",
		Short: "Block-structured rich text editor for the terminal",
		Long: `blockpad edits a document made of typed blocks: paragraphs, headings,
bullets, todos, code and images. Markdown shortcuts typed at the start of a
block (#, ##, ###, [], -) change its type; **bold**, *italic* and ~strike~
are converted as you type.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for key, name := range flagKeys {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return errors.Wrapf(err, "bind --%s", name)
				}
			}
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
			}
			if len(args) == 1 {
				v.Set("document", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return runEditor(cfg)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./blockpad.yaml or ~/.config/blockpad/blockpad.yaml)")
	root.PersistentFlags().StringP("document", "d", "blockpad.doc.yaml", "document file")
	root.PersistentFlags().Bool("read-only", false, "open without editing")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newCatCmd(v), newVersionCmd())
	return root
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"document":  "document",
	"read_only": "read-only",
	"log.level": "log-level",
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blockpad version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), blockpad.BuildInfo())
		},
	}
}

func newCatCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "cat [document]",
		Short: "Print a document as plain text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			blocks, err := loadBlocks(store.New(cfg.Document))
			if err != nil {
				return err
			}
			return writePlain(cmd.OutOrStdout(), block.New(blocks, block.Options{}))
		},
	}
}

// writePlain prints one line per block with a text marker for its type.
func writePlain(w io.Writer, d block.Document) error {
	for _, b := range d.Blocks() {
		text := richtext.Plain(b.Content)
		var prefix string
		switch b.Type {
		case block.Heading1:
			prefix = "# "
		case block.Heading2:
			prefix = "## "
		case block.Heading3:
			prefix = "### "
		case block.Bullet:
			prefix = "- "
		case block.Todo:
			prefix = "[ ] "
			if b.Checked {
				prefix = "[x] "
			}
		case block.Code:
			prefix = "    "
			text = strings.ReplaceAll(text, "\n", "\n    ")
		}
		if _, err := fmt.Fprintln(w, prefix+text); err != nil {
			return errors.Wrap(err, "write document")
		}
	}
	return nil
}

func runEditor(cfg *config.Config) error {
	app, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run terminal UI")
	}
	return app.session.err
}
