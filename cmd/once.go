package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/praise/cli"
	"github.com/grovetools/praise/logging"
	"github.com/grovetools/praise/pkg/praise"
	"github.com/grovetools/praise/pkg/presenter"
)

// NewOnceCmd creates the `once` command.
func NewOnceCmd() *cobra.Command {
	var noHints bool

	cmd := &cobra.Command{
		Use:   "once [name]",
		Short: "Print a single word of praise",
		Long: `Print a single word of praise with the time it was given.

Examples:
  praise once
  praise once たなか --no-hints
  praise once --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			hints := cfg.HintsEnabled() && !noHints
			entry := presenter.Entry{
				Time:    time.Now().Format(presenter.TimeLayout),
				Message: praise.NewSelector(praise.WithHints(hints)).Select(),
			}
			if len(args) == 1 {
				entry.Who = args[0]
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				return json.NewEncoder(out).Encode(entry)
			}

			message := entry.Message
			if entry.Who != "" {
				message = entry.Who + "さん、" + message
			}
			logging.NewPrettyLogger().WithWriter(out).Praise(message, entry.Time)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHints, "no-hints", false, "Never append a work hint")
	return cmd
}
