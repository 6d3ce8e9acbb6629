package main

import "github.com/spf13/cobra"

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [-k | -i]",
		Short: "Reset the store, or one half of it",
		Long: `Reset the store.

  clip clear     # both the list and the keyed map
  clip clear -k  # only the keyed map (also --key)
  clip clear -i  # only the list (also --index)`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
