package main

import "github.com/spf13/cobra"

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <value> | add -k <key> <value>",
		Short: "Append a value, or save it under a key",
		Long: `Append a value to the list, or save it under a key.

A key that already exists is overwritten. With -p/--paste the value is
taken from the system clipboard.

Examples:
  clip add "meeting at 3"
  clip add -k wifi hunter2
  clip add -p
  clip add -k snippet --paste
  echo "piped value" | clip add`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
