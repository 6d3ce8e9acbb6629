package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/matsen/clip/internal/command"
	"github.com/matsen/clip/internal/store"
)

// ErrorResponse is the JSON line written to stderr on failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// classify maps an error to its kind name and exit code.
func classify(err error) (string, int) {
	var (
		corrupt *store.CorruptStoreError
		ioErr   *store.IOError
		idxErr  *store.InvalidIndexError
		keyErr  *store.InvalidKeyError
		argErr  *command.InvalidArgumentsError
		optErr  *command.InvalidOptionError
		unknown *command.UnknownCommandError
	)
	switch {
	case errors.As(err, &corrupt):
		return "corrupt_store", ExitCorruptStore
	case errors.As(err, &ioErr):
		return "io", ExitError
	case errors.As(err, &idxErr):
		return "invalid_index", ExitInvalidIndex
	case errors.As(err, &keyErr):
		return "invalid_key", ExitInvalidKey
	case errors.As(err, &argErr):
		return "invalid_arguments", ExitInvalidArguments
	case errors.As(err, &optErr):
		return "invalid_option", ExitInvalidOption
	case errors.As(err, &unknown):
		return "unknown_command", ExitUnknownCommand
	default:
		return "error", ExitError
	}
}

// outputError writes err as a JSON line to w and returns the exit code.
func outputError(w io.Writer, err error) int {
	kind, code := classify(err)
	data, mErr := json.Marshal(ErrorResponse{Error: err.Error(), Kind: kind})
	if mErr != nil {
		fmt.Fprintf(w, "error: %s\n", err)
		return code
	}
	fmt.Fprintf(w, "%s\n", data)
	return code
}
