package main

import "github.com/spf13/cobra"

func newCopyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <index> | copy -k <key>",
		Short: "Copy a single value to the system clipboard",
		Long: `Copy a value to the system clipboard instead of printing it.

Uses pbcopy on macOS and xclip or xsel on Linux.

Examples:
  clip copy -1
  clip copy -k wifi`,
		DisableFlagParsing: true,
		RunE:               a.runParsed,
	}
}
