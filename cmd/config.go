package cmd

import (
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/praise/cli"
	"github.com/grovetools/praise/config"
)

// NewConfigCmd creates the `config` command.
func NewConfigCmd() *cobra.Command {
	var (
		asTOML bool
		schema bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after layering, defaults and validation.

Examples:
  praise config
  praise config --toml
  praise config --schema > praise.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if schema {
				data, err := config.GenerateSchema()
				if err != nil {
					return err
				}
				_, err = out.Write(append(data, '\n'))
				return err
			}

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}

			switch {
			case cli.GetOptions(cmd).JSONOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			case asTOML:
				return toml.NewEncoder(out).Encode(cfg)
			default:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(cfg)
			}
		},
	}

	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print as TOML instead of YAML")
	cmd.Flags().BoolVar(&schema, "schema", false, "Print the JSON schema for praise.yml")
	return cmd
}
