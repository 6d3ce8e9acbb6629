package main

import "github.com/spf13/cobra"

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index> | rm -k <key>",
		Short: "Remove a single value",
		Long: `Remove a value by list index or by key.

Later list entries shift down by one.

Examples:
  clip rm 1
  clip rm -1
  clip rm -k wifi`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
