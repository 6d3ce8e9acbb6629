package main

// Exit codes, one per error kind
const (
	ExitSuccess          = 0 // Success
	ExitError            = 1 // General error (store I/O, clipboard, output)
	ExitCorruptStore     = 2 // Store file exists but does not parse
	ExitInvalidIndex     = 3 // Index not an integer or out of range
	ExitInvalidKey       = 4 // Key not present
	ExitInvalidArguments = 5 // Wrong number or shape of arguments
	ExitInvalidOption    = 6 // Unrecognized option for ls/clear
	ExitUnknownCommand   = 7 // Unrecognized command name
)
