// Package command parses a clip argument vector into a typed command.
package command

import (
	"strconv"
	"strings"

	"github.com/matsen/clip/internal/store"
)

// Command is one of the concrete command types below.
type Command interface {
	Name() string
}

// Add appends Value to the list, or stores it under Key when Keyed.
// With Paste the value is read from the system clipboard instead.
type Add struct {
	Keyed bool
	Key   string
	Value string
	Paste bool
}

// Get prints one entry.
type Get struct {
	Ref Ref
}

// Copy writes one entry to the system clipboard.
type Copy struct {
	Ref Ref
}

// Remove deletes one entry.
type Remove struct {
	Ref Ref
}

// List prints a collection, or both.
type List struct {
	Scope store.Scope
}

// Clear resets a collection, or both.
type Clear struct {
	Scope store.Scope
}

// Find searches every entry for Query.
type Find struct {
	Query string
}

// Help prints usage.
type Help struct{}

// Version prints the version string.
type Version struct{}

func (Add) Name() string     { return "add" }
func (Get) Name() string     { return "get" }
func (Copy) Name() string    { return "copy" }
func (Remove) Name() string  { return "rm" }
func (List) Name() string    { return "ls" }
func (Clear) Name() string   { return "clear" }
func (Find) Name() string    { return "find" }
func (Help) Name() string    { return "help" }
func (Version) Name() string { return "version" }

// Ref addresses a single entry, either by list position or by key.
type Ref struct {
	Keyed bool
	Key   string
	Index int
}

func (r Ref) String() string {
	if r.Keyed {
		return "key " + strconv.Quote(r.Key)
	}
	return "index " + strconv.Itoa(r.Index)
}

// Names lists the recognized command names, in usage order.
var Names = []string{"add", "get", "ls", "rm", "clear", "copy", "find"}

var listFlags = map[string]store.Scope{
	"-a": store.ScopeAll, "--all": store.ScopeAll,
	"-k": store.ScopeKeyed, "--key": store.ScopeKeyed,
}

var clearFlags = map[string]store.Scope{
	"-k": store.ScopeKeyed, "--key": store.ScopeKeyed,
	"-i": store.ScopeIndexed, "--index": store.ScopeIndexed,
}

func isKeyFlag(tok string) bool   { return tok == "-k" || tok == "--key" }
func isPasteFlag(tok string) bool { return tok == "-p" || tok == "--paste" }

// Parse validates tokens for the named command. All arity and option errors
// are reported here, before any store access.
func Parse(name string, tokens []string) (Command, error) {
	switch name {
	case "add":
		return parseAdd(tokens)
	case "get", "copy", "rm":
		ref, err := parseRef(name, tokens)
		if err != nil {
			return nil, err
		}
		switch name {
		case "get":
			return Get{Ref: ref}, nil
		case "copy":
			return Copy{Ref: ref}, nil
		default:
			return Remove{Ref: ref}, nil
		}
	case "ls":
		scope, err := parseScope(name, tokens, listFlags, store.ScopeIndexed)
		if err != nil {
			return nil, err
		}
		return List{Scope: scope}, nil
	case "clear":
		scope, err := parseScope(name, tokens, clearFlags, store.ScopeAll)
		if err != nil {
			return nil, err
		}
		return Clear{Scope: scope}, nil
	case "find":
		if len(tokens) == 0 {
			return nil, &InvalidArgumentsError{Command: name, Reason: "missing search query"}
		}
		return Find{Query: strings.Join(tokens, " ")}, nil
	case "help", "-h", "--help":
		return Help{}, nil
	case "-v", "--version":
		return Version{}, nil
	default:
		return nil, &UnknownCommandError{Name: name}
	}
}

func parseAdd(tokens []string) (Command, error) {
	if len(tokens) == 0 {
		return nil, &InvalidArgumentsError{Command: "add", Reason: "missing value"}
	}
	if isKeyFlag(tokens[0]) {
		if len(tokens) != 3 {
			return nil, &InvalidArgumentsError{Command: "add", Reason: "usage: add -k <key> <value>"}
		}
		if isPasteFlag(tokens[2]) {
			return Add{Keyed: true, Key: tokens[1], Paste: true}, nil
		}
		return Add{Keyed: true, Key: tokens[1], Value: tokens[2]}, nil
	}
	if isPasteFlag(tokens[0]) {
		if len(tokens) != 1 {
			return nil, &InvalidArgumentsError{Command: "add", Reason: "usage: add -p"}
		}
		return Add{Paste: true}, nil
	}
	// Extra tokens after a positional value are ignored.
	return Add{Value: tokens[0]}, nil
}

func parseRef(name string, tokens []string) (Ref, error) {
	if len(tokens) == 0 {
		return Ref{}, &InvalidArgumentsError{Command: name, Reason: "missing index or -k <key>"}
	}
	if isKeyFlag(tokens[0]) {
		if len(tokens) < 2 {
			return Ref{}, &InvalidArgumentsError{Command: name, Reason: "missing key after " + tokens[0]}
		}
		return Ref{Keyed: true, Key: tokens[1]}, nil
	}
	i, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Ref{}, &store.InvalidIndexError{Token: tokens[0]}
	}
	return Ref{Index: i}, nil
}

func parseScope(name string, tokens []string, flags map[string]store.Scope, def store.Scope) (store.Scope, error) {
	switch len(tokens) {
	case 0:
		return def, nil
	case 1:
		scope, ok := flags[tokens[0]]
		if !ok {
			return def, &InvalidOptionError{Command: name, Option: tokens[0]}
		}
		return scope, nil
	default:
		return def, &InvalidArgumentsError{Command: name, Reason: "takes at most one option"}
	}
}
