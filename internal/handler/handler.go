// Package handler executes parsed commands against a store.
package handler

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/clip/internal/clipboard"
	"github.com/matsen/clip/internal/command"
	"github.com/matsen/clip/internal/logger"
	"github.com/matsen/clip/internal/search"
	"github.com/matsen/clip/internal/store"
)

// Handler runs one command per invocation.
type Handler struct {
	Store     *store.Store
	Out       io.Writer
	Clipboard clipboard.Clipboard
	Usage     string
	Version   string
}

// New returns a Handler writing to out and using the system clipboard.
func New(s *store.Store, out io.Writer) *Handler {
	return &Handler{
		Store:     s,
		Out:       out,
		Clipboard: clipboard.System{},
	}
}

// Run executes cmd. Store and clipboard errors are returned unchanged so the
// caller can map them to exit codes.
func (h *Handler) Run(ctx context.Context, cmd command.Command) error {
	logger.Logger.Debug().Str("command", cmd.Name()).Interface("args", cmd).Msg("dispatch")

	switch c := cmd.(type) {
	case command.Add:
		return h.add(c)
	case command.Get:
		return h.get(c)
	case command.Copy:
		return h.copy(c)
	case command.Remove:
		return h.remove(c)
	case command.List:
		return h.list(c)
	case command.Clear:
		return h.Store.Clear(c.Scope)
	case command.Find:
		return h.find(ctx, c)
	case command.Help:
		_, err := io.WriteString(h.Out, h.Usage)
		return err
	case command.Version:
		_, err := fmt.Fprintln(h.Out, h.Version)
		return err
	default:
		return fmt.Errorf("unhandled command type %T", cmd)
	}
}

func (h *Handler) add(c command.Add) error {
	value := c.Value
	if c.Paste {
		text, err := h.Clipboard.Paste()
		if err != nil {
			return fmt.Errorf("reading clipboard: %w", err)
		}
		value = strings.TrimSuffix(text, "\n")
		if value == "" {
			return &command.InvalidArgumentsError{Command: c.Name(), Reason: "clipboard is empty"}
		}
	}

	if c.Keyed {
		return h.Store.SetKeyed(c.Key, value)
	}
	return h.Store.AppendIndexed(value)
}

func (h *Handler) lookup(ref command.Ref) (string, error) {
	if ref.Keyed {
		return h.Store.GetKeyed(ref.Key)
	}
	return h.Store.GetIndexed(ref.Index)
}

func (h *Handler) get(c command.Get) error {
	v, err := h.lookup(c.Ref)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(h.Out, v)
	return err
}

func (h *Handler) copy(c command.Copy) error {
	v, err := h.lookup(c.Ref)
	if err != nil {
		return err
	}
	if err := h.Clipboard.Copy(v); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	logger.Logger.Info().Str("ref", c.Ref.String()).Int("bytes", len(v)).Msg("copied to clipboard")
	return nil
}

func (h *Handler) remove(c command.Remove) error {
	if c.Ref.Keyed {
		return h.Store.RemoveKeyed(c.Ref.Key)
	}
	return h.Store.RemoveIndexed(c.Ref.Index)
}

func (h *Handler) list(c command.List) error {
	d, err := h.Store.Load()
	if err != nil {
		return err
	}

	var v any
	switch c.Scope {
	case store.ScopeAll:
		v = d
	case store.ScopeKeyed:
		v = d.KeyStorage
	default:
		v = d.IndexedStorage
	}
	return h.writeJSON(v)
}

func (h *Handler) find(ctx context.Context, c command.Find) error {
	d, err := h.Store.Load()
	if err != nil {
		return err
	}
	matches, err := search.Find(ctx, d, c.Query)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	return h.writeJSON(matches)
}

func (h *Handler) writeJSON(v any) error {
	data, err := store.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = h.Out.Write(data)
	return err
}
