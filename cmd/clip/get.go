package main

import "github.com/spf13/cobra"

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <index> | get -k <key>",
		Short: "Print a single value",
		Long: `Print a single value by list index or by key.

Negative indices count from the end of the list.

Examples:
  clip get 0
  clip get -1
  clip get -k wifi`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
