package command

import "fmt"

// InvalidArgumentsError reports a command with the wrong number or shape of tokens.
type InvalidArgumentsError struct {
	Command string
	Reason  string
}

func (e *InvalidArgumentsError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Command, e.Reason)
}

// InvalidOptionError reports an unrecognized option token.
type InvalidOptionError struct {
	Command string
	Option  string
}

func (e *InvalidOptionError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("invalid option %q", e.Option)
	}
	return fmt.Sprintf("invalid option %q for %s", e.Option, e.Command)
}

// UnknownCommandError reports an unrecognized command name.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}
