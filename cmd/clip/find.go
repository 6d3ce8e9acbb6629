package main

import "github.com/spf13/cobra"

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <query...>",
		Short: "Full-text search over every stored value",
		Long: `Search list values, keys, and keyed values.

Matches are printed as a JSON array, best match first. All query words
must match.

Examples:
  clip find milk
  clip find call mom`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
