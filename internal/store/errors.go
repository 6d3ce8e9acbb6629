package store

import (
	"fmt"
)

// CorruptStoreError is returned when the store file exists but does not parse
// as a store value.
type CorruptStoreError struct {
	Path string
	Err  error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("corrupt store %s: %v", e.Path, e.Err)
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// IOError wraps file system failures while reading, writing, or locking the store.
type IOError struct {
	Op   string // read, write, lock
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// InvalidIndexError reports an index token that is not an integer, or an
// index outside the current list.
type InvalidIndexError struct {
	Token  string // set when the token failed to parse
	Index  int
	Length int
}

func (e *InvalidIndexError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid index %q: not an integer", e.Token)
	}
	return fmt.Sprintf("invalid index %d: list has %d entries", e.Index, e.Length)
}

// InvalidKeyError reports a key that is not present in the keyed map.
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %q: not found", e.Key)
}
