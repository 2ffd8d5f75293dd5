// Package cmd wires the praise subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/praise/cli"
	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/version"
)

// NewRootCmd builds the `praise` command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"praise",
		"Click a hard-working person, get a warm word of praise",
	)
	root.Long = `Serves a small page of worker pictures. Clicking one (or asking for another)
shows a random word of encouragement with the time it was given, and keeps a
short history for the browser session.`
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewServeCmd())
	root.AddCommand(NewTUICmd())
	root.AddCommand(NewWorkersCmd())
	root.AddCommand(NewOnceCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewLogsCmd())
	root.AddCommand(cli.NewVersionCommand("praise"))

	cli.SetVersionTemplate(root, version.GetInfo())
	cli.ApplyStyledHelpRecursive(root)
	return root
}

// Execute runs the root command and reports failures through the error handler.
func Execute() error {
	root := NewRootCmd()
	cmd, err := root.ExecuteC()
	switch {
	case err == nil:
	case errors.GetCode(err) == "":
		// Flag and argument mistakes from cobra itself.
		cli.PrintError(cmd, err)
	default:
		cli.NewErrorHandler(cli.GetOptions(cmd).Verbose).Handle(err)
	}
	return err
}
