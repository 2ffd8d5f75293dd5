package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/grovetools/praise/cli"
	"github.com/grovetools/praise/internal/watch"
	"github.com/grovetools/praise/logging"
	"github.com/grovetools/praise/tui"
	"github.com/grovetools/praise/tui/keymap"
)

// NewTUICmd creates the `tui` command.
func NewTUICmd() *cobra.Command {
	var flags assetFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Praise workers from the terminal",
		Long: `Praise workers from the terminal. The session lasts as long as the program.

Examples:
  praise tui
  praise tui --variant single`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}

			// Stderr logging would tear the alt screen.
			defer logging.SuspendStderr()()
			tui.InitializeTUI()

			model := tui.New(cfg.Title, newPresenter(cfg, time.Now), workerSource(cfg), keymap.Load(cfg))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

			if cfg.WatchEnabled() {
				w, err := watch.New(cfg.Assets.Dir, cfg.Assets.Extensions, watch.DefaultDebounce, func(string) {
					p.Send(tui.WorkersChangedMsg{})
				})
				if err == nil {
					go w.Start(cmd.Context())
					defer w.Close()
				}
			}

			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
