// Package main provides the clip CLI entry point.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matsen/clip/internal/command"
	"github.com/matsen/clip/internal/config"
	"github.com/matsen/clip/internal/handler"
	"github.com/matsen/clip/internal/logger"
	"github.com/matsen/clip/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// app carries the per-invocation streams and command tree.
type app struct {
	stdout io.Writer
	stderr io.Writer
	root   *cobra.Command
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return newApp(stdout, stderr).execute(ctx, args, stdin)
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{stdout: stdout, stderr: stderr}
	a.root = newRootCmd(a)
	return a
}

func (a *app) execute(ctx context.Context, args []string, stdin io.Reader) int {
	line, ok, err := readPipedLine(stdin)
	if err != nil {
		return outputError(a.stderr, fmt.Errorf("reading stdin: %w", err))
	}
	if ok {
		args = append(args, line)
	}

	if len(args) == 0 {
		return a.runMeta(ctx, command.Help{})
	}

	// Anything that is not a subcommand goes through the grammar before cobra
	// sees it, so root flags after an unknown name cannot mask it.
	if !a.isSubcommand(args[0]) {
		parsed, err := command.Parse(args[0], args[1:])
		if err != nil {
			return a.fail(err)
		}
		if _, ok := parsed.(command.Help); !ok || args[0] != "help" || len(args) == 1 {
			return a.runMeta(ctx, parsed)
		}
		// help <topic> is left to cobra once the topic is known
		if args[1] != "help" && !a.isSubcommand(args[1]) {
			return a.fail(&command.UnknownCommandError{Name: args[1]})
		}
	}

	a.root.SetArgs(args)
	if err := a.root.ExecuteContext(ctx); err != nil {
		return a.fail(err)
	}
	return ExitSuccess
}

// fail reports err on stderr and returns its exit code. Unknown commands
// also print usage.
func (a *app) fail(err error) int {
	code := outputError(a.stderr, err)
	if code == ExitUnknownCommand {
		fmt.Fprint(a.stderr, a.root.UsageString())
	}
	return code
}

// isSubcommand reports whether name routes to a registered subcommand.
func (a *app) isSubcommand(name string) bool {
	for _, c := range a.root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// runMeta runs help and version. They never touch the store or config.
func (a *app) runMeta(ctx context.Context, cmd command.Command) int {
	h := &handler.Handler{Out: a.stdout, Usage: a.helpText(), Version: versionString()}
	if err := h.Run(ctx, cmd); err != nil {
		return a.fail(err)
	}
	return ExitSuccess
}

// helpText renders the root help.
func (a *app) helpText() string {
	var buf bytes.Buffer
	a.root.InitDefaultHelpFlag()
	a.root.InitDefaultVersionFlag()
	a.root.InitDefaultHelpCmd()
	a.root.SetOut(&buf)
	defer a.root.SetOut(a.stdout)
	if err := a.root.Help(); err != nil {
		return a.root.UsageString()
	}
	return buf.String()
}

// handler resolves configuration and builds the handler for this invocation.
func (a *app) handler() (*handler.Handler, error) {
	settings, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	logger.Init(settings.LogLevel, a.stderr)
	logger.Logger.Debug().Str("store", settings.StoragePath).Msg("resolved settings")

	return handler.New(store.Open(settings.StoragePath), a.stdout), nil
}

// runParsed is the RunE of every store subcommand. Flag parsing is disabled
// on those commands so tokens like "-1" and "-k" reach the grammar intact.
// A lone -h or --help prints the subcommand help.
func (a *app) runParsed(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && (args[0] == "-h" || args[0] == "--help") {
		return cmd.Help()
	}
	parsed, err := command.Parse(cmd.Name(), args)
	if err != nil {
		return err
	}
	h, err := a.handler()
	if err != nil {
		return err
	}
	return h.Run(cmd.Context(), parsed)
}

func versionString() string {
	return "clip version " + Version
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "clip",
		Short: "Local note and clipboard store",
		Long: `clip keeps short text values in a local store.

Values are appended to an ordered list or saved under a name, and later
listed, printed, copied to the clipboard, searched, or removed.

All state lives in one JSON file (default ~/.clip_storage.json).
Set CLIP_STORAGE_PATH or storage_path in ~/.config/clip/config.yml to move it.
If stdin is not a terminal, one line is read and appended to the arguments:
  echo "some value" | clip add`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetVersionTemplate(versionString() + "\n")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newAddCmd(a),
		newGetCmd(a),
		newLsCmd(a),
		newRmCmd(a),
		newClearCmd(a),
		newCopyCmd(a),
		newFindCmd(a),
	)
	return root
}
