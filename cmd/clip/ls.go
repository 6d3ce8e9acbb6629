package main

import "github.com/spf13/cobra"

func newLsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [-a | -k]",
		Short: "List stored values as JSON",
		Long: `List stored values as JSON.

  clip ls        # the indexed list
  clip ls -k     # the keyed map (also --key)
  clip ls -a     # the whole store (also --all)`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
