package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readPipedLine reads one line from a non-terminal stdin so a value can be
// piped into add. Returns ok=false for a terminal, a nil reader, or an
// empty line.
func readPipedLine(r io.Reader) (line string, ok bool, err error) {
	if r == nil || isTerminal(r) {
		return "", false, nil
	}
	line, err = bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", false, nil
	}
	return line, true, nil
}
