package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/praise/cli"
	"github.com/grovetools/praise/logging"
	"github.com/grovetools/praise/pkg/presenter"
)

// NewWorkersCmd creates the `workers` command.
func NewWorkersCmd() *cobra.Command {
	var flags assetFlags

	cmd := &cobra.Command{
		Use:   "workers",
		Short: "List the workers the page would show",
		Long: `List the workers the page would show, in display order.

Examples:
  praise workers
  praise workers --assets ./photos --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}

			list, err := workerSource(cfg)()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			pretty := logging.NewPrettyLogger().WithWriter(out)
			if len(list) == 0 {
				pretty.WarnPretty(presenter.NoticeNoWorkers)
				return nil
			}
			pretty.Path("assets", cfg.Assets.Dir)
			pretty.Field("workers", len(list))
			pretty.Divider()
			for i, w := range list {
				if w.Placeholder {
					fmt.Fprintf(out, "%3d  %s (placeholder)\n", i, w.Name)
					continue
				}
				fmt.Fprintf(out, "%3d  %s\n", i, w.Name)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
